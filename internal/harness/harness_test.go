package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/ir"
)

func TestRun_KnownValues(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/known_values.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Cases, 8)

	for i, c := range result.Cases {
		assert.Equal(t, scenario.Cases[i].Date, c.Date)
		assert.Equal(t, int64(i+1), c.Seq)
		assert.Equal(t, c.Date, c.Record.BirthDate)

		id, err := ir.ResultID(c.Record)
		require.NoError(t, err)
		assert.Equal(t, id, c.ID)
	}
}

func TestRun_LeapMonths(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/leap_months.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.True(t, result.Cases[1].Record.LeapMonth)
}

func TestRun_MismatchReportsEveryField(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong values",
		Cases: []Case{{
			Date:   "2000-01-01",
			Expect: map[string]any{"kin": 152, "sukuyo": "心宿", "star": "玉堂星"},
		}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)

	msg := result.Errors[0]
	assert.Contains(t, msg, "cases[0] 2000-01-01")
	assert.Contains(t, msg, "kin: expected 152, actual 153")
	assert.Contains(t, msg, `star: expected "玉堂星", actual "司禄星"`)
	assert.NotContains(t, msg, "sukuyo")

	// The record is still reported for golden comparison.
	require.Len(t, result.Cases, 1)
	assert.Equal(t, 153, result.Cases[0].Record.Kin)
}

func TestRun_EmptyExpectOnlyComputes(t *testing.T) {
	scenario := &Scenario{
		Name:        "compute_only",
		Description: "no expectations",
		Cases:       []Case{{Date: "2100-12-31"}, {Date: "1900-01-01"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Len(t, result.Cases, 2)
}

func TestRun_InvalidCaseDate(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "unparsed",
		Cases:       []Case{{Date: "2023-02-29"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Empty(t, result.Cases)
}

func TestRun_Properties(t *testing.T) {
	scenario := &Scenario{
		Name:        "properties",
		Description: "a short window around the 2023 leap month",
		Properties: []Property{
			{Type: PropLunarDayMonotonic, From: "2023-03-01", To: "2023-05-01"},
			{Type: PropDeterminism, From: "2023-03-20", To: "2023-03-24"},
			{Type: PropRange, From: "2023-03-01", To: "2023-03-31"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Cases)
}

func TestEvaluateProperty_UnknownType(t *testing.T) {
	errs := evaluateProperty(Property{Type: "bogus", From: "2000-01-01", To: "2000-01-02"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown property type")
}

func TestMatchExpect(t *testing.T) {
	rec := ir.Record{BirthDate: "2000-01-01", Kin: 153, Sukuyo: "心宿", LeapMonth: false}

	assert.NoError(t, matchExpect(rec, nil))
	assert.NoError(t, matchExpect(rec, map[string]any{"kin": 153, "leap_month": false}))
	assert.NoError(t, matchExpect(rec, map[string]any{"kin": float64(153)}))

	err := matchExpect(rec, map[string]any{"kin": "153", "leap_month": true, "bogus": 1})
	var ee *ExpectationError
	require.True(t, errors.As(err, &ee))
	require.Len(t, ee.Mismatches, 3)
	// Sorted by field name.
	assert.Equal(t, "bogus", ee.Mismatches[0].Field)
	assert.Equal(t, "no such field", ee.Mismatches[0].Actual)
	assert.Equal(t, "kin", ee.Mismatches[1].Field)
	assert.Equal(t, "leap_month", ee.Mismatches[2].Field)

	err = matchExpect(rec, map[string]any{"kin": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-integer")
}

func TestCheckLunarStep(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur ir.LunarDate
		ok        bool
	}{
		{"next day", ir.LunarDate{LunarYear: 2023, LunarMonth: 2, LunarDay: 29}, ir.LunarDate{LunarYear: 2023, LunarMonth: 2, LunarDay: 30}, true},
		{"into leap month", ir.LunarDate{LunarYear: 2023, LunarMonth: 2, LunarDay: 30}, ir.LunarDate{LunarYear: 2023, LunarMonth: 2, LunarDay: 1, IsLeapMonth: true}, true},
		{"new year", ir.LunarDate{LunarYear: 2023, LunarMonth: 12, LunarDay: 30}, ir.LunarDate{LunarYear: 2024, LunarMonth: 1, LunarDay: 1}, true},
		{"skipped day", ir.LunarDate{LunarYear: 2023, LunarMonth: 3, LunarDay: 4}, ir.LunarDate{LunarYear: 2023, LunarMonth: 3, LunarDay: 6}, false},
		{"restart in same month", ir.LunarDate{LunarYear: 2023, LunarMonth: 3, LunarDay: 29}, ir.LunarDate{LunarYear: 2023, LunarMonth: 3, LunarDay: 1}, false},
		{"year change mid month", ir.LunarDate{LunarYear: 2023, LunarMonth: 1, LunarDay: 5}, ir.LunarDate{LunarYear: 2024, LunarMonth: 1, LunarDay: 6}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := checkLunarStep(tc.prev, tc.cur)
			if tc.ok {
				assert.Empty(t, msg)
			} else {
				assert.Contains(t, msg, "does not follow")
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	good := ir.FortuneResult{
		Tzolkin:    ir.TzolkinResult{Kin: 153},
		Numerology: ir.NumerologyResult{LifePath: "4"},
		Sukuyo:     "心宿",
		Lunar:      ir.LunarDate{LunarYear: 1999, LunarMonth: 11, LunarDay: 25},
		Sanmeigaku: ir.SanmeigakuResult{Day: ir.PillarFromIndex(0)},
		Bazi:       ir.BaziResult{Stem: "甲"},
	}
	assert.Empty(t, checkRange(good))

	bad := good
	bad.Tzolkin.Kin = 261
	assert.Contains(t, checkRange(bad), "kin 261")

	bad = good
	bad.Sukuyo = "角"
	assert.Contains(t, checkRange(bad), "unknown mansion")

	bad = good
	bad.Numerology.LifePath = "44"
	assert.Contains(t, checkRange(bad), "life path")

	bad = good
	bad.Bazi.Stem = "乙"
	assert.Contains(t, checkRange(bad), "day stem")
}
