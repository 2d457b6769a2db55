// Package zodiac maps a birth date to its tropical Western sign.
package zodiac

// Signs starts at Capricorn so that Signs[m%12] is the sign that begins
// during month m.
var Signs = [12]string{
	"山羊座", "水瓶座", "魚座", "牡羊座", "牡牛座", "双子座",
	"蟹座", "獅子座", "乙女座", "天秤座", "蠍座", "射手座",
}

// Cutover is the first day of month m (index m-1) that belongs to the
// sign starting in that month.
var Cutover = [12]int{20, 19, 21, 20, 21, 22, 23, 23, 23, 24, 23, 22}

// Sign returns the sign for month m (1..12) and day d.
func Sign(m, d int) string {
	if d >= Cutover[m-1] {
		return Signs[m%12]
	}
	return Signs[(m-1)%12]
}
