package astro

import "math"

const (
	// J2000 is the Julian Day of 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	// JulianCentury is the length of a Julian century in days.
	JulianCentury = 36525.0

	// JSTOffset is UTC+9 expressed in days.
	JSTOffset = 9.0 / 24.0

	rad = math.Pi / 180.0
)

// NormalizeAngle reduces a into [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// math.Mod of a tiny negative value plus 360 can round to 360.
	if a >= 360 {
		a -= 360
	}
	return a
}

// WrapDegrees reduces a signed angular difference into [-180, 180].
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}

// JulianDay converts a proleptic Gregorian date to the Julian Day of its
// 0h UT instant (the .5 boundary), using the Meeus algorithm.
func JulianDay(y, m, d int) float64 {
	year, month := y, m
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(d) + b - 1524.5
}

// CalendarFromJD converts a Julian Day back to the Gregorian date whose
// civil day contains it (Meeus, chapter 7).
func CalendarFromJD(jd float64) (y, m, d int) {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z
	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	dd := math.Floor(365.25 * c)
	e := math.Floor((b - dd) / 30.6001)

	d = int(math.Floor(b - dd - math.Floor(30.6001*e) + f))
	if e < 14 {
		m = int(e) - 1
	} else {
		m = int(e) - 13
	}
	if m > 2 {
		y = int(c) - 4716
	} else {
		y = int(c) - 4715
	}
	return y, m, d
}

// DayNumber returns the integer day number of the civil day that starts
// at jd (floor(jd + 0.5)). Consecutive dates differ by exactly one.
func DayNumber(jd float64) int {
	return int(math.Floor(jd + 0.5))
}

// JSTDayNumber returns the day number of the UTC+9 civil day containing
// the UT instant jd. No DST or historical offsets are applied.
func JSTDayNumber(jd float64) int {
	return int(math.Floor(jd + JSTOffset + 0.5))
}

// centuries returns Julian centuries since J2000.
func centuries(jd float64) float64 {
	return (jd - J2000) / JulianCentury
}

// SolarLongitude returns the Sun's apparent ecliptic longitude in degrees
// using a low-precision series: quadratic mean longitude and anomaly, a
// three-term equation of centre and a nutation/aberration correction.
func SolarLongitude(jd float64) float64 {
	t := centuries(jd)
	l0 := NormalizeAngle(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := NormalizeAngle(357.52911 + 35999.05029*t - 0.0001537*t*t)

	mr := m * rad
	c := (1.914602-0.004817*t)*math.Sin(mr) +
		(0.019993-0.000101*t)*math.Sin(2*mr) +
		0.000289*math.Sin(3*mr)

	omega := 125.04 - 1934.136*t
	lon := l0 + c - 0.00569 - 0.00478*math.Sin(omega*rad)
	return NormalizeAngle(lon)
}

// lunarTerm is one periodic term of the Moon's longitude: amplitude in
// millionths of a degree times sin(d*D + ms*M + mm*M' + f*F).
type lunarTerm struct {
	d, ms, mm, f float64
	amp          float64
}

// lunarTerms are the 24 largest longitude terms of Meeus table 47.A.
var lunarTerms = [24]lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
}

// LunarLongitude returns the Moon's ecliptic longitude in degrees from the
// truncated Meeus lunar theory.
func LunarLongitude(jd float64) float64 {
	t := centuries(jd)
	t2, t3, t4 := t*t, t*t*t, t*t*t*t

	lm := NormalizeAngle(218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000)
	mm := NormalizeAngle(134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000)
	ms := NormalizeAngle(357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000)
	d := NormalizeAngle(297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000)
	f := NormalizeAngle(93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000)

	dr, msr, mmr, fr := d*rad, ms*rad, mm*rad, f*rad

	var sum float64
	for _, term := range lunarTerms {
		sum += term.amp * math.Sin(term.d*dr+term.ms*msr+term.mm*mmr+term.f*fr)
	}
	return NormalizeAngle(lm + sum/1e6)
}
