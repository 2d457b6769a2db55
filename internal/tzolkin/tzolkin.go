// Package tzolkin computes the Dreamspell Tzolkin day (kin) of a
// Gregorian date.
package tzolkin

import "github.com/roach88/unsei/internal/ir"

// Cycle is the length of the Tzolkin count.
const Cycle = 260

// Year table bounds.
const (
	FirstTableYear = 1950
	LastTableYear  = 2010
)

// Glyphs are the twenty solar seals.
var Glyphs = [20]string{
	"赤い竜", "白い風", "青い夜", "黄色い種", "赤い蛇",
	"白い世界の橋渡し", "青い手", "黄色い星", "赤い月", "白い犬",
	"青い猿", "黄色い人", "赤い空歩く人", "白い魔法使い", "青い鷲",
	"黄色い戦士", "赤い地球", "白い鏡", "青い嵐", "黄色い太陽",
}

// Tones are the thirteen galactic tones.
var Tones = [13]string{
	"磁気(1)", "月(2)", "電気(3)", "自己存在(4)", "倍音(5)", "律動(6)", "共振(7)",
	"銀河(8)", "太陽(9)", "惑星(10)", "スペクトル(11)", "水晶(12)", "宇宙(13)",
}

// yearConstants holds the year constant for 1950..2010.
var yearConstants = [LastTableYear - FirstTableYear + 1]int{
	168, 13, 118, 223, 68, 173, 18, 123, 228, 73,
	113, 218, 63, 168, 13, 118, 223, 68, 173, 18,
	123, 228, 73, 178, 23, 128, 233, 78, 183, 28,
	133, 238, 83, 188, 33, 138, 243, 88, 193, 38,
	143, 248, 93, 198, 43, 148, 253, 98, 203, 48,
	153, 258, 103, 208, 53, 158, 3, 108, 213, 58,
	163,
}

// monthConstants is indexed by month 1..12.
var monthConstants = [13]int{0, 259, 30, 58, 89, 119, 150, 180, 211, 242, 272, 303, 333}

// YearConstant returns the year's offset into the count. Outside
// 1950..2010 it falls back to an approximation anchored at 2000 and
// reports false.
func YearConstant(y int) (int, bool) {
	if y >= FirstTableYear && y <= LastTableYear {
		return yearConstants[y-FirstTableYear], true
	}
	shift := (365 * (y - 2000)) % Cycle
	return ((153+shift)%Cycle + Cycle) % Cycle, false
}

// Kin returns the kin number (1..260) of y-m-d and whether the year
// constant came from the table.
func Kin(y, m, d int) (int, bool) {
	yc, ok := YearConstant(y)
	k := (yc + monthConstants[m] + d) % Cycle
	if k == 0 {
		k = Cycle
	}
	return k, ok
}

// FromKin resolves glyph, tone and wavespell for a kin in 1..260.
func FromKin(kin int) ir.TzolkinResult {
	g := (kin - 1) % 20
	t := (kin - 1) % 13
	ws := ((kin-t-1)%20 + 20) % 20
	return ir.TzolkinResult{
		Kin:            kin,
		Glyph:          Glyphs[g],
		Tone:           Tones[t],
		Wavespell:      Glyphs[ws],
		GlyphIndex:     g,
		ToneIndex:      t,
		WavespellIndex: ws,
	}
}

// Compute returns the Tzolkin day of y-m-d. m must be 1..12.
func Compute(y, m, d int) ir.TzolkinResult {
	kin, ok := Kin(y, m, d)
	r := FromKin(kin)
	r.FromTable = ok
	return r
}
