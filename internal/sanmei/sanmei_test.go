package sanmei

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/ir"
)

func TestDerive_KnownValues(t *testing.T) {
	cases := []struct {
		date             string
		day, month, year string
		hidden           string
		star             string
	}{
		{"1979-11-22", "癸巳", "乙亥", "己未", "壬", "石門星"},
		{"1982-11-06", "癸巳", "庚戌", "壬戌", "戊", "牽牛星"},
		{"2000-01-01", "戊午", "丙子", "己卯", "癸", "司禄星"},
		{"1988-02-20", "乙巳", "甲寅", "戊辰", "甲", "石門星"},
		{"1983-06-04", "癸亥", "丁巳", "癸亥", "丙", "司禄星"},
		{"1983-06-29", "戊子", "戊午", "癸亥", "丁", "玉堂星"},
		{"1986-09-03", "庚戌", "丙申", "丙寅", "庚", "貫索星"},
		{"1989-10-24", "丁巳", "甲戌", "己巳", "戊", "調舒星"},
		{"1900-01-01", "甲戌", "丙子", "己亥", "癸", "玉堂星"},
		{"2100-12-31", "丁未", "戊子", "庚申", "癸", "車騎星"},
	}
	for _, tc := range cases {
		t.Run(tc.date, func(t *testing.T) {
			d, err := ir.ParseCalendarDate(tc.date)
			require.NoError(t, err)

			got, err := Derive(d.Year, d.Month, d.Day)
			require.NoError(t, err)
			assert.Equal(t, tc.day, got.Day.String(), "day pillar")
			assert.Equal(t, tc.month, got.Month.String(), "month pillar")
			assert.Equal(t, tc.year, got.Year.String(), "year pillar")
			assert.Equal(t, tc.hidden, ir.Stems[got.HiddenStem], "hidden stem")
			assert.Equal(t, tc.star, got.MainStar, "main star")
		})
	}
}

func TestDerive_RisshunBoundary(t *testing.T) {
	// 立春 2024 fell on 2024-02-04 08:21 UT.
	before, err := Derive(2024, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "癸卯", before.Year.String())
	assert.Equal(t, "乙丑", before.Month.String())
	assert.Equal(t, "己", ir.Stems[before.HiddenStem])

	after, err := Derive(2024, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "甲辰", after.Year.String())
	assert.Equal(t, "丙寅", after.Month.String())
	// First day of 寅: the early hidden stem 戊 governs.
	assert.Equal(t, "戊", ir.Stems[after.HiddenStem])
	assert.Equal(t, "石門星", after.MainStar)
}

func TestDerive_JanuarySetsuRollsBackToDecember(t *testing.T) {
	// 小寒 2000 fell on 2000-01-06 00:58 UT, so January 6 is still in
	// the 子 month of 1999.
	dec, err := Derive(2000, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, "丙子", dec.Month.String())

	jan, err := Derive(2000, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "丁丑", jan.Month.String())
	assert.Equal(t, "己卯", jan.Year.String())
	assert.Equal(t, "癸", ir.Stems[jan.HiddenStem])
}

func TestStemYear(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    int
	}{
		{1988, 1, 31, 1987},
		{1988, 2, 4, 1987},
		{1988, 2, 5, 1988},
		{1988, 3, 1, 1988},
		{1988, 12, 31, 1988},
	}
	for _, tc := range cases {
		got, err := StemYear(tc.y, tc.m, tc.d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%d-%d-%d", tc.y, tc.m, tc.d)
	}
}

func TestDayPillar_Cycle(t *testing.T) {
	d := ir.MustDate(2000, 1, 1)
	first := DayPillar(d.Year, d.Month, d.Day)
	assert.Equal(t, "戊午", first.String())

	for i := 1; i <= 120; i++ {
		n := d.AddDays(i)
		p := DayPillar(n.Year, n.Month, n.Day)
		assert.Equal(t, (first.Index()+i)%60, p.Index(), "offset %d", i)
	}
}

func TestYearPillar(t *testing.T) {
	assert.Equal(t, "甲子", YearPillar(1984).String())
	assert.Equal(t, "癸亥", YearPillar(1983).String())
	assert.Equal(t, "甲子", YearPillar(1924).String())
	assert.Equal(t, "庚子", YearPillar(1900).String())
	assert.Equal(t, "甲辰", YearPillar(2024).String())
}

func TestMonthPillar_FiveTigers(t *testing.T) {
	// The 寅 month of 甲 and 己 years is 丙寅, of 乙 and 庚 years 戊寅, ...
	want := []string{"丙寅", "戊寅", "庚寅", "壬寅", "甲寅"}
	for stem := 0; stem < 10; stem++ {
		assert.Equal(t, want[stem%5], MonthPillar(stem, 2).String(), "year stem %s", ir.Stems[stem])
	}
	// 子 and 丑 close the year and continue the same stem count.
	assert.Equal(t, "丁丑", MonthPillar(0, 1).String())
	assert.Equal(t, "丙子", MonthPillar(5, 0).String())
}

func TestHiddenStem_Segments(t *testing.T) {
	// 寅: 戊 for 7 days, 丙 for 7 days, then 甲.
	assert.Equal(t, "戊", ir.Stems[HiddenStem(2, 0)])
	assert.Equal(t, "戊", ir.Stems[HiddenStem(2, 6)])
	assert.Equal(t, "丙", ir.Stems[HiddenStem(2, 7)])
	assert.Equal(t, "丙", ir.Stems[HiddenStem(2, 13)])
	assert.Equal(t, "甲", ir.Stems[HiddenStem(2, 14)])

	// 午 has no early segment: 己 for 9 days, then 丁.
	assert.Equal(t, "己", ir.Stems[HiddenStem(6, 0)])
	assert.Equal(t, "己", ir.Stems[HiddenStem(6, 8)])
	assert.Equal(t, "丁", ir.Stems[HiddenStem(6, 9)])

	// 亥 has no middle segment: 甲 for 12 days, then 壬.
	assert.Equal(t, "甲", ir.Stems[HiddenStem(11, 11)])
	assert.Equal(t, "壬", ir.Stems[HiddenStem(11, 12)])

	// Single-stem branches.
	for _, b := range []int{0, 3, 9} {
		main := zokanTable[b].Main
		for days := 0; days < 31; days++ {
			assert.Equal(t, main, HiddenStem(b, days))
		}
	}
}

func TestMainStar(t *testing.T) {
	idx := func(s string) int {
		i := ir.StemIndex(s)
		require.GreaterOrEqual(t, i, 0, s)
		return i
	}
	assert.Equal(t, "貫索星", MainStar(idx("甲"), idx("甲")))
	assert.Equal(t, "石門星", MainStar(idx("甲"), idx("乙")))
	assert.Equal(t, "鳳閣星", MainStar(idx("甲"), idx("丙")))
	assert.Equal(t, "司禄星", MainStar(idx("戊"), idx("癸")))
	assert.Equal(t, "龍高星", MainStar(idx("庚"), idx("戊")))
	assert.Equal(t, "玉堂星", MainStar(idx("甲"), idx("癸")))
	assert.Equal(t, "車騎星", MainStar(idx("甲"), idx("庚")))

	seen := map[string]bool{}
	for self := 0; self < 10; self++ {
		for target := 0; target < 10; target++ {
			seen[MainStar(self, target)] = true
		}
	}
	assert.Len(t, seen, 10)
}
