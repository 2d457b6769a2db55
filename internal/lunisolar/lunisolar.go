// Package lunisolar converts Gregorian dates into the traditional
// Chinese/Japanese lunisolar calendar.
//
// A lunar month runs from the JST day of one new moon up to (not
// including) the JST day of the next. Its number is fixed by the major
// solar term (zhongqi, a multiple of 30° of solar longitude) that falls
// inside it; a month that contains none is a leap month and repeats the
// number of the month before it.
package lunisolar

import (
	"fmt"

	"github.com/roach88/unsei/internal/astro"
	"github.com/roach88/unsei/internal/ir"
)

// NoZhongqi marks a synodic month without an enclosed major solar term.
const NoZhongqi = -1

// lookback is how far before a new moon the previous one is sought.
const lookback = 30.0

// SynodicMonth is the new-moon-to-new-moon span enclosing a date.
type SynodicMonth struct {
	NewMoon     float64 // JD of the opening new moon
	NextNewMoon float64 // JD of the closing new moon
	StartDay    int     // JST day number of NewMoon
	EndDay      int     // JST day number of NextNewMoon (exclusive)

	// Zhongqi is the first major solar term angle, scanning 0°..330°,
	// whose crossing falls inside the month, or NoZhongqi.
	Zhongqi int
}

// Length returns the number of civil days in the month (29 or 30).
func (s SynodicMonth) Length() int { return s.EndDay - s.StartDay }

// Contains reports whether the JST day number falls inside the month.
func (s SynodicMonth) Contains(day int) bool {
	return day >= s.StartDay && day < s.EndDay
}

// IsLeap reports whether the month has no major solar term.
func (s SynodicMonth) IsLeap() bool { return s.Zhongqi == NoZhongqi }

// FromGregorian returns the lunisolar date of the civil date y-m-d.
// The date is not validated.
func FromGregorian(y, m, d int) (ir.LunarDate, error) {
	ld, _, err := Convert(y, m, d)
	return ld, err
}

// Convert is FromGregorian that also returns the enclosing synodic month.
func Convert(y, m, d int) (ir.LunarDate, SynodicMonth, error) {
	targetJD := astro.JulianDay(y, m, d)
	targetDay := astro.DayNumber(targetJD)

	month, err := enclosingMonth(targetJD, targetDay)
	if err != nil {
		return ir.LunarDate{}, SynodicMonth{}, err
	}

	ld := ir.LunarDate{
		LunarYear: y,
		LunarDay:  targetDay - month.StartDay + 1,
	}

	if !month.IsLeap() {
		ld.LunarMonth = MonthForZhongqi(month.Zhongqi)
	} else {
		ld.IsLeapMonth = true
		ld.LunarMonth, err = inheritedMonth(month)
		if err != nil {
			return ir.LunarDate{}, SynodicMonth{}, err
		}
	}

	// The lunar new year has not arrived yet.
	if ld.LunarMonth >= 11 && m <= 2 {
		ld.LunarYear--
	}
	return ld, month, nil
}

// MonthForZhongqi maps a zhongqi angle to its lunar month number;
// 330° belongs to month 1, 0° to month 2 and so on.
func MonthForZhongqi(angle int) int {
	return ((angle+30)%360)/30 + 1
}

// enclosingMonth locates the synodic month whose JST days contain
// targetDay, then scans it for a zhongqi.
func enclosingMonth(targetJD float64, targetDay int) (SynodicMonth, error) {
	nm, err := newMoon(targetJD)
	if err != nil {
		return SynodicMonth{}, err
	}
	if astro.JSTDayNumber(nm) > targetDay {
		if nm, err = newMoon(nm - lookback); err != nil {
			return SynodicMonth{}, err
		}
	}

	next, err := newMoon(nm + lookback)
	if err != nil {
		return SynodicMonth{}, err
	}
	if astro.JSTDayNumber(next) <= targetDay {
		nm = next
		if next, err = newMoon(nm + lookback); err != nil {
			return SynodicMonth{}, err
		}
	}

	month := span(nm, next)
	month.Zhongqi = scanZhongqi(month)
	return month, nil
}

// inheritedMonth returns the month number of the synodic month before
// a leap month, defaulting to 1 when that month has no zhongqi either.
func inheritedMonth(leap SynodicMonth) (int, error) {
	prev, err := newMoon(leap.NewMoon - lookback)
	if err != nil {
		return 0, err
	}
	before := span(prev, leap.NewMoon)
	if a := scanZhongqi(before); a != NoZhongqi {
		return MonthForZhongqi(a), nil
	}
	return 1, nil
}

func span(nm, next float64) SynodicMonth {
	return SynodicMonth{
		NewMoon:     nm,
		NextNewMoon: next,
		StartDay:    astro.JSTDayNumber(nm),
		EndDay:      astro.JSTDayNumber(next),
		Zhongqi:     NoZhongqi,
	}
}

// scanZhongqi returns the first 30° multiple whose crossing, searched
// from the month's midpoint, lands on one of its JST days. A crossing
// the bisection cannot bracket lies more than 20 days from the midpoint,
// which is always outside the month.
func scanZhongqi(s SynodicMonth) int {
	mid := (s.NewMoon + s.NextNewMoon) / 2
	for angle := 0; angle < 360; angle += 30 {
		jd, err := astro.FindSolarLongitude(float64(angle), mid)
		if err != nil {
			continue
		}
		if s.Contains(astro.JSTDayNumber(jd)) {
			return angle
		}
	}
	return NoZhongqi
}

func newMoon(seed float64) (float64, error) {
	jd, err := astro.FindNewMoon(seed)
	if err != nil {
		return 0, fmt.Errorf("locate new moon near JD %.2f: %w", seed, err)
	}
	return jd, nil
}
