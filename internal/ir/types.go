package ir

// Ten heavenly stems (甲..癸). Index parity is polarity (even = yang),
// index/2 is the five-element group (wood, fire, earth, metal, water).
var Stems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// Twelve earthly branches (子..亥).
var Branches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// StemIndex returns the index of a stem name, or -1.
func StemIndex(name string) int {
	for i, s := range Stems {
		if s == name {
			return i
		}
	}
	return -1
}

// Pillar is one stem-branch pair of the sexagenary cycle.
type Pillar struct {
	Stem   int `json:"stem"`
	Branch int `json:"branch"`
}

// PillarFromIndex returns the pillar at position i of the 60-cycle.
func PillarFromIndex(i int) Pillar {
	i = ((i % 60) + 60) % 60
	return Pillar{Stem: i % 10, Branch: i % 12}
}

// Index returns the pillar's position in the 60-cycle, or -1 if the
// stem and branch have different parity (no such pillar exists).
func (p Pillar) Index() int {
	for i := p.Stem; i < 60; i += 10 {
		if i%12 == p.Branch {
			return i
		}
	}
	return -1
}

// StemName returns the stem's name.
func (p Pillar) StemName() string { return Stems[p.Stem] }

// BranchName returns the branch's name.
func (p Pillar) BranchName() string { return Branches[p.Branch] }

func (p Pillar) String() string { return p.StemName() + p.BranchName() }

// LunarDate is a date in the traditional lunisolar calendar.
type LunarDate struct {
	LunarYear   int  `json:"lunar_year"`
	LunarMonth  int  `json:"lunar_month"`
	LunarDay    int  `json:"lunar_day"`
	IsLeapMonth bool `json:"is_leap_month"`
}

// SanmeigakuResult holds the three pillars and the derived star.
type SanmeigakuResult struct {
	Day        Pillar `json:"day"`
	Month      Pillar `json:"month"`
	Year       Pillar `json:"year"`
	HiddenStem int    `json:"hidden_stem"`
	MainStar   string `json:"main_star"`
}

// DayStem returns the name of the day pillar's stem.
func (r SanmeigakuResult) DayStem() string { return r.Day.StemName() }

// TzolkinResult is the Tzolkin day for a birth date.
type TzolkinResult struct {
	Kin            int    `json:"kin"`
	Glyph          string `json:"glyph"`
	Tone           string `json:"tone"`
	Wavespell      string `json:"wavespell"`
	GlyphIndex     int    `json:"glyph_index"`
	ToneIndex      int    `json:"tone_index"`
	WavespellIndex int    `json:"wavespell_index"`

	// FromTable is false when the year constant came from the
	// approximate fallback formula instead of the 1950-2010 table.
	FromTable bool `json:"from_table"`
}

// ToneNumber returns the 1-based galactic tone.
func (t TzolkinResult) ToneNumber() int { return t.ToneIndex + 1 }

// NumerologyResult holds the life path number. It is a string because
// master numbers "11", "22" and "33" are kept unreduced.
type NumerologyResult struct {
	LifePath string `json:"life_path"`
}

// WesternResult holds the tropical zodiac sign.
type WesternResult struct {
	Sign string `json:"sign"`
}

// BaziResult is the summary pair shown to readers: day stem and main star.
type BaziResult struct {
	Stem string `json:"stem"`
	Star string `json:"star"`
}

// FortuneResult aggregates every system for one birth date.
type FortuneResult struct {
	Date       CalendarDate     `json:"date"`
	Tzolkin    TzolkinResult    `json:"tzolkin"`
	Numerology NumerologyResult `json:"numerology"`
	Western    WesternResult    `json:"western"`
	Bazi       BaziResult       `json:"bazi"`
	Sanmeigaku SanmeigakuResult `json:"sanmeigaku"`
	Sukuyo     string           `json:"sukuyo"`
	Lunar      LunarDate        `json:"lunar"`
}
