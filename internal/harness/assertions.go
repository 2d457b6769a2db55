package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/unsei/internal/engine"
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/sukuyo"
)

// maxPropertyErrors caps the messages one property reports.
const maxPropertyErrors = 10

// Mismatch is one expected record field that differed.
type Mismatch struct {
	Field    string
	Expected string
	Actual   string
}

// ExpectationError is returned when a computed record does not match a
// case's expectations. It lists every differing field.
type ExpectationError struct {
	Date       string
	Mismatches []Mismatch
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "expectation failed for %s", e.Date)
	for _, m := range e.Mismatches {
		fmt.Fprintf(&buf, "\n  %s: expected %s, actual %s", m.Field, m.Expected, m.Actual)
	}
	return buf.String()
}

// matchExpect checks that rec contains every expected field (subset
// match). Extra record fields are ignored.
func matchExpect(rec ir.Record, expect map[string]any) error {
	if len(expect) == 0 {
		return nil
	}

	obj := rec.Object()
	keys := make([]string, 0, len(expect))
	for k := range expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var mismatches []Mismatch
	for _, key := range keys {
		want, err := toValue(expect[key])
		if err != nil {
			mismatches = append(mismatches, Mismatch{Field: key, Expected: err.Error(), Actual: "-"})
			continue
		}
		got, ok := obj[key]
		if !ok {
			mismatches = append(mismatches, Mismatch{Field: key, Expected: formatValue(want), Actual: "no such field"})
			continue
		}
		if got != want {
			mismatches = append(mismatches, Mismatch{Field: key, Expected: formatValue(want), Actual: formatValue(got)})
		}
	}

	if len(mismatches) > 0 {
		return &ExpectationError{Date: rec.BirthDate, Mismatches: mismatches}
	}
	return nil
}

// toValue converts a YAML-decoded scalar to a record value.
func toValue(v any) (ir.Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null expectation")
	case string:
		return ir.Str(val), nil
	case int:
		return ir.Int(val), nil
	case int64:
		return ir.Int(val), nil
	case float64:
		if val == float64(int64(val)) {
			return ir.Int(int64(val)), nil
		}
		return nil, fmt.Errorf("non-integer number %v", val)
	case bool:
		return ir.Bool(val), nil
	default:
		return nil, fmt.Errorf("unsupported expectation type %T", v)
	}
}

func formatValue(v ir.Value) string {
	if s, ok := v.(ir.Str); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return fmt.Sprintf("%v", v)
}

// evaluateProperty checks p on every date of its range and returns one
// message per violation, up to maxPropertyErrors.
func evaluateProperty(p Property) []string {
	from, to, err := p.span()
	if err != nil {
		return []string{err.Error()}
	}

	var (
		errs []string
		prev *ir.FortuneResult
	)
	add := func(format string, args ...any) bool {
		errs = append(errs, fmt.Sprintf(format, args...))
		return len(errs) < maxPropertyErrors
	}

	for d := from; d.Compare(to) <= 0; d = d.AddDays(1) {
		r, err := engine.Compute(d)
		if err != nil {
			if !add("%s: %v", d, err) {
				break
			}
			prev = nil
			continue
		}

		var msg string
		switch p.Type {
		case PropDeterminism:
			msg = checkDeterminism(r)
		case PropRange:
			msg = checkRange(r)
		case PropLunarDayMonotonic:
			if prev != nil {
				msg = checkLunarStep(prev.Lunar, r.Lunar)
			}
		default:
			return []string{fmt.Sprintf("unknown property type %q", p.Type)}
		}
		if msg != "" && !add("%s: %s", d, msg) {
			break
		}
		prev = &r
	}
	return errs
}

func checkDeterminism(r ir.FortuneResult) string {
	again, err := engine.Compute(r.Date)
	if err != nil {
		return fmt.Sprintf("second computation failed: %v", err)
	}
	if !reflect.DeepEqual(r, again) {
		return "repeated computation differs"
	}
	return ""
}

var lifePaths = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "11": true, "22": true, "33": true,
}

func checkRange(r ir.FortuneResult) string {
	switch {
	case r.Tzolkin.Kin < 1 || r.Tzolkin.Kin > 260:
		return fmt.Sprintf("kin %d out of range", r.Tzolkin.Kin)
	case r.Tzolkin.ToneIndex < 0 || r.Tzolkin.ToneIndex > 12:
		return fmt.Sprintf("tone index %d out of range", r.Tzolkin.ToneIndex)
	case r.Tzolkin.GlyphIndex < 0 || r.Tzolkin.GlyphIndex > 19:
		return fmt.Sprintf("glyph index %d out of range", r.Tzolkin.GlyphIndex)
	case !sukuyo.IsMansion(r.Sukuyo):
		return fmt.Sprintf("unknown mansion %q", r.Sukuyo)
	case !lifePaths[r.Numerology.LifePath]:
		return fmt.Sprintf("life path %q not reduced", r.Numerology.LifePath)
	case r.Lunar.LunarMonth < 1 || r.Lunar.LunarMonth > 12:
		return fmt.Sprintf("lunar month %d out of range", r.Lunar.LunarMonth)
	case r.Lunar.LunarDay < 1 || r.Lunar.LunarDay > 30:
		return fmt.Sprintf("lunar day %d out of range", r.Lunar.LunarDay)
	case r.Bazi.Stem != r.Sanmeigaku.DayStem():
		return fmt.Sprintf("day stem %s differs from pillar %s", r.Bazi.Stem, r.Sanmeigaku.Day)
	}
	return ""
}

// checkLunarStep verifies that cur follows prev by one day: either the
// same month one day later, or day 1 of a different month.
func checkLunarStep(prev, cur ir.LunarDate) string {
	sameMonth := prev.LunarYear == cur.LunarYear &&
		prev.LunarMonth == cur.LunarMonth &&
		prev.IsLeapMonth == cur.IsLeapMonth
	if sameMonth && cur.LunarDay == prev.LunarDay+1 {
		return ""
	}
	if !sameMonth && cur.LunarDay == 1 {
		return ""
	}
	return fmt.Sprintf("lunar date %s does not follow %s", cur, prev)
}
