// Package sanmei derives the sexagenary day, month and year pillars of a
// birth date and the Sanmeigaku main star read from them.
//
// Months and years follow the solar terms, not the lunar calendar: a
// Sanmeigaku month starts at the setsu crossing listed in SetsuiriAngles,
// and the year starts at 立春 (solar longitude 315°).
package sanmei

import (
	"fmt"
	"math"

	"github.com/roach88/unsei/internal/astro"
	"github.com/roach88/unsei/internal/ir"
)

const (
	// dayCycleOffset aligns floor(JD+0.5) with the sexagenary day count.
	dayCycleOffset = 49

	// anchorYear is a 甲子 year.
	anchorYear = 1984

	// risshun is the solar longitude at the start of spring.
	risshun = 315.0
)

// DayPillar returns the sexagenary pillar of the civil day y-m-d.
func DayPillar(y, m, d int) ir.Pillar {
	return ir.PillarFromIndex(astro.DayNumber(astro.JulianDay(y, m, d)) + dayCycleOffset)
}

// YearPillar returns the pillar of a stem year.
func YearPillar(stemYear int) ir.Pillar {
	return ir.PillarFromIndex(stemYear - anchorYear)
}

// MonthPillar applies the five-tigers rule: the 寅 month of a year whose
// stem is s has stem (s mod 5)*2+2, and later branches count on from it.
func MonthPillar(yearStem, branch int) ir.Pillar {
	base := (yearStem%5)*2 + 2
	diff := (branch - 2 + 12) % 12
	return ir.Pillar{Stem: (base + diff) % 10, Branch: branch}
}

// Derive computes the Sanmeigaku pillars, hidden stem and main star.
func Derive(y, m, d int) (ir.SanmeigakuResult, error) {
	targetJD := astro.JulianDay(y, m, d)
	day := DayPillar(y, m, d)

	setsuJD, err := setsu(y, m)
	if err != nil {
		return ir.SanmeigakuResult{}, err
	}

	sanmeiYear, sanmeiMonth := y, m
	if targetJD < setsuJD {
		sanmeiMonth--
		if sanmeiMonth == 0 {
			sanmeiMonth = 12
			sanmeiYear--
		}
	}

	stemYear, err := StemYear(y, m, d)
	if err != nil {
		return ir.SanmeigakuResult{}, err
	}
	year := YearPillar(stemYear)
	month := MonthPillar(year.Stem, MonthBranch[sanmeiMonth])

	monthStart := setsuJD
	if sanmeiMonth != m {
		if monthStart, err = setsu(sanmeiYear, sanmeiMonth); err != nil {
			return ir.SanmeigakuResult{}, err
		}
	}
	daysFromSetsu := int(math.Floor(targetJD - monthStart))

	hidden := HiddenStem(month.Branch, daysFromSetsu)
	return ir.SanmeigakuResult{
		Day:        day,
		Month:      month,
		Year:       year,
		HiddenStem: hidden,
		MainStar:   MainStar(day.Stem, hidden),
	}, nil
}

// StemYear returns the year whose stem and branch govern y-m-d: the
// previous year for January, and for February until the 立春 crossing.
func StemYear(y, m, d int) (int, error) {
	switch {
	case m < 2:
		return y - 1, nil
	case m == 2:
		jd, err := astro.FindSolarLongitude(risshun, astro.JulianDay(y, 2, 1))
		if err != nil {
			return 0, fmt.Errorf("locate 立春 %d: %w", y, err)
		}
		if astro.JulianDay(y, m, d) < jd {
			return y - 1, nil
		}
	}
	return y, nil
}

// HiddenStem returns the stem of branch that governs the day lying
// daysFromSetsu days after the month's setsu.
func HiddenStem(branch, daysFromSetsu int) int {
	z := zokanTable[branch]
	switch {
	case z.EarlyDays > 0 && daysFromSetsu < z.EarlyDays:
		return z.Early
	case z.MiddleDays > 0 && daysFromSetsu < z.EarlyDays+z.MiddleDays:
		return z.Middle
	default:
		return z.Main
	}
}

// MainStar names the relation of target to self. Element is stem/2,
// polarity is stem%2.
func MainStar(self, target int) string {
	relation := ((target/2-self/2)%5 + 5) % 5
	same := 0
	if self%2 == target%2 {
		same = 1
	}
	return StarMap[relation][same]
}

func setsu(y, m int) (float64, error) {
	jd, err := astro.FindSolarLongitude(SetsuiriAngles[m], astro.JulianDay(y, m, 1))
	if err != nil {
		return 0, fmt.Errorf("locate setsu for %d-%02d: %w", y, m, err)
	}
	return jd, nil
}
