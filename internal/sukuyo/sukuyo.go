// Package sukuyo maps a lunisolar date to one of the 27 lunar mansions
// of Sukuyo astrology.
package sukuyo

import (
	"errors"
	"fmt"

	"github.com/roach88/unsei/internal/ir"
)

// Suffix is appended to every mansion name.
const Suffix = "宿"

// Mansions are the 27 lunar mansions, starting at 昴.
var Mansions = [27]string{
	"昴", "畢", "觜", "参", "井", "鬼", "柳", "星", "張",
	"翼", "軫", "角", "亢", "氐", "房", "心", "尾", "箕",
	"斗", "女", "虚", "危", "室", "壁", "奎", "婁", "胃",
}

// monthBase is the mansion of the first day of each lunar month,
// indexed by month 1..12.
var monthBase = [13]int{-1, 22, 24, 26, 1, 3, 5, 8, 10, 13, 15, 18, 20}

// ErrUnmappedLunarMonth means the lunar month is outside 1..12. The
// lunisolar converter never produces one, so this is a defect upstream.
var ErrUnmappedLunarMonth = errors.New("lunar month has no base mansion")

// Index returns the mansion index (0..26) of a lunar date. A leap month
// uses the base of the month it repeats.
func Index(ld ir.LunarDate) (int, error) {
	if ld.LunarMonth < 1 || ld.LunarMonth > 12 {
		return 0, fmt.Errorf("lunar month %d: %w", ld.LunarMonth, ErrUnmappedLunarMonth)
	}
	return (monthBase[ld.LunarMonth] + ld.LunarDay - 1) % len(Mansions), nil
}

// Mansion returns the mansion name with its suffix, e.g. "箕宿".
func Mansion(ld ir.LunarDate) (string, error) {
	i, err := Index(ld)
	if err != nil {
		return "", err
	}
	return Mansions[i] + Suffix, nil
}

// IsMansion reports whether name is one of the 27 suffixed names.
func IsMansion(name string) bool {
	for _, m := range Mansions {
		if m+Suffix == name {
			return true
		}
	}
	return false
}
