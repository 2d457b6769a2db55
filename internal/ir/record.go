package ir

import (
	"fmt"
	"strings"
)

// Record is the flat, float-free projection of a FortuneResult that
// downstream consumers (story prompts, document stores) receive.
type Record struct {
	BirthDate        string `json:"birth_date"`
	Kin              int    `json:"kin"`
	Glyph            string `json:"glyph"`
	Tone             int    `json:"tone"`
	ToneName         string `json:"tone_name"`
	Wavespell        string `json:"wavespell"`
	TzolkinFromTable bool   `json:"tzolkin_from_table"`
	LifePath         string `json:"life_path"`
	Sign             string `json:"sign"`
	Stem             string `json:"stem"`
	Star             string `json:"star"`
	DayPillar        string `json:"day_pillar"`
	MonthPillar      string `json:"month_pillar"`
	YearPillar       string `json:"year_pillar"`
	HiddenStem       string `json:"hidden_stem"`
	Sukuyo           string `json:"sukuyo"`
	LunarYear        int    `json:"lunar_year"`
	LunarMonth       int    `json:"lunar_month"`
	LunarDay         int    `json:"lunar_day"`
	LeapMonth        bool   `json:"leap_month"`
	EngineVersion    string `json:"engine_version"`
}

// Record flattens the result.
func (r FortuneResult) Record() Record {
	return Record{
		BirthDate:        r.Date.String(),
		Kin:              r.Tzolkin.Kin,
		Glyph:            r.Tzolkin.Glyph,
		Tone:             r.Tzolkin.ToneNumber(),
		ToneName:         r.Tzolkin.Tone,
		Wavespell:        r.Tzolkin.Wavespell,
		TzolkinFromTable: r.Tzolkin.FromTable,
		LifePath:         r.Numerology.LifePath,
		Sign:             r.Western.Sign,
		Stem:             r.Bazi.Stem,
		Star:             r.Bazi.Star,
		DayPillar:        r.Sanmeigaku.Day.String(),
		MonthPillar:      r.Sanmeigaku.Month.String(),
		YearPillar:       r.Sanmeigaku.Year.String(),
		HiddenStem:       Stems[r.Sanmeigaku.HiddenStem],
		Sukuyo:           r.Sukuyo,
		LunarYear:        r.Lunar.LunarYear,
		LunarMonth:       r.Lunar.LunarMonth,
		LunarDay:         r.Lunar.LunarDay,
		LeapMonth:        r.Lunar.IsLeapMonth,
		EngineVersion:    EngineVersion,
	}
}

// Object returns the record as a canonical-JSON-ready object.
// Keys match the json tags.
func (rec Record) Object() Object {
	return Object{
		"birth_date":         Str(rec.BirthDate),
		"kin":                Int(rec.Kin),
		"glyph":              Str(rec.Glyph),
		"tone":               Int(rec.Tone),
		"tone_name":          Str(rec.ToneName),
		"wavespell":          Str(rec.Wavespell),
		"tzolkin_from_table": Bool(rec.TzolkinFromTable),
		"life_path":          Str(rec.LifePath),
		"sign":               Str(rec.Sign),
		"stem":               Str(rec.Stem),
		"star":               Str(rec.Star),
		"day_pillar":         Str(rec.DayPillar),
		"month_pillar":       Str(rec.MonthPillar),
		"year_pillar":        Str(rec.YearPillar),
		"hidden_stem":        Str(rec.HiddenStem),
		"sukuyo":             Str(rec.Sukuyo),
		"lunar_year":         Int(rec.LunarYear),
		"lunar_month":        Int(rec.LunarMonth),
		"lunar_day":          Int(rec.LunarDay),
		"leap_month":         Bool(rec.LeapMonth),
		"engine_version":     Str(rec.EngineVersion),
	}
}

// Summary renders the human-readable analysis block handed to story
// writers, one line per system.
func (r FortuneResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "・マヤ暦: KIN%d / 太陽の紋章:%s / 銀河の音:%s / ウェイブスペル:%s\n",
		r.Tzolkin.Kin, r.Tzolkin.Glyph, r.Tzolkin.Tone, r.Tzolkin.Wavespell)
	fmt.Fprintf(&b, "・算命学: 日干[%s] / 中心星[%s]\n", r.Bazi.Stem, r.Bazi.Star)
	fmt.Fprintf(&b, "・数秘術: ライフパスナンバー[%s]\n", r.Numerology.LifePath)
	fmt.Fprintf(&b, "・西洋占星術: %s\n", r.Western.Sign)
	fmt.Fprintf(&b, "・宿曜: %s\n", r.Sukuyo)
	return b.String()
}

// String renders a lunar date as 旧暦 text, marking leap months with 閏.
func (l LunarDate) String() string {
	leap := ""
	if l.IsLeapMonth {
		leap = "閏"
	}
	return fmt.Sprintf("%d年%s%d月%d日", l.LunarYear, leap, l.LunarMonth, l.LunarDay)
}
