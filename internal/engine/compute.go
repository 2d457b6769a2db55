package engine

import (
	"github.com/roach88/unsei/internal/ir"
	"github.com/roach88/unsei/internal/lunisolar"
	"github.com/roach88/unsei/internal/numerology"
	"github.com/roach88/unsei/internal/sanmei"
	"github.com/roach88/unsei/internal/sukuyo"
	"github.com/roach88/unsei/internal/tzolkin"
	"github.com/roach88/unsei/internal/zodiac"
)

// ComputeYMD validates year-month-day and computes its FortuneResult.
// An invalid date fails with ErrCodeInvalidDate before any astronomy runs.
func ComputeYMD(y, m, d int) (ir.FortuneResult, error) {
	date, err := ir.NewCalendarDate(y, m, d)
	if err != nil {
		return ir.FortuneResult{}, NewInvalidDateError(y, m, d, err)
	}
	return Compute(date)
}

// Compute derives every system for date.
//
// The result depends only on date: repeated calls return identical
// values and concurrent calls need no coordination.
func Compute(date ir.CalendarDate) (ir.FortuneResult, error) {
	y, m, d := date.Year, date.Month, date.Day
	if _, err := ir.NewCalendarDate(y, m, d); err != nil {
		return ir.FortuneResult{}, NewInvalidDateError(y, m, d, err)
	}

	sm, err := sanmei.Derive(y, m, d)
	if err != nil {
		return ir.FortuneResult{}, classify(date, "sanmeigaku", err)
	}

	lunar, err := lunisolar.FromGregorian(y, m, d)
	if err != nil {
		return ir.FortuneResult{}, classify(date, "lunisolar", err)
	}

	mansion, err := sukuyo.Mansion(lunar)
	if err != nil {
		return ir.FortuneResult{}, classify(date, "sukuyo", err)
	}

	return ir.FortuneResult{
		Date:       date,
		Tzolkin:    tzolkin.Compute(y, m, d),
		Numerology: ir.NumerologyResult{LifePath: numerology.LifePath(y, m, d)},
		Western:    ir.WesternResult{Sign: zodiac.Sign(m, d)},
		Bazi:       ir.BaziResult{Stem: sm.DayStem(), Star: sm.MainStar},
		Sanmeigaku: sm,
		Sukuyo:     mansion,
		Lunar:      lunar,
	}, nil
}
