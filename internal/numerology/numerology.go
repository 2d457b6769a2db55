// Package numerology computes the Pythagorean life path number.
package numerology

import "strconv"

// masterNumbers are kept unreduced.
var masterNumbers = map[string]bool{"11": true, "22": true, "33": true}

// LifePath concatenates the unpadded decimal year, month and day and
// repeatedly sums the digits until a single digit or a master number
// remains.
func LifePath(y, m, d int) string {
	return Reduce(strconv.Itoa(y) + strconv.Itoa(m) + strconv.Itoa(d))
}

// Reduce digit-sums s until it is one character long or a master number.
// Non-digit characters count as zero.
func Reduce(s string) string {
	for !masterNumbers[s] && len(s) > 1 {
		sum := 0
		for _, c := range s {
			if c >= '0' && c <= '9' {
				sum += int(c - '0')
			}
		}
		s = strconv.Itoa(sum)
	}
	return s
}

// IsMaster reports whether lp is 11, 22 or 33.
func IsMaster(lp string) bool { return masterNumbers[lp] }
