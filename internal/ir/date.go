package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is the sentinel wrapped by every DateError.
var ErrInvalidDate = errors.New("invalid calendar date")

// DateError reports a year/month/day triple that is not a proleptic
// Gregorian date.
type DateError struct {
	Year, Month, Day int
	Reason           string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// CalendarDate is a proleptic Gregorian date.
// Values built with NewCalendarDate or ParseCalendarDate are always valid;
// the zero value is not.
type CalendarDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// NewCalendarDate validates y-m-d and returns it as a CalendarDate.
func NewCalendarDate(y, m, d int) (CalendarDate, error) {
	if m < 1 || m > 12 {
		return CalendarDate{}, &DateError{y, m, d, "month out of range 1..12"}
	}
	if n := DaysInMonth(y, m); d < 1 || d > n {
		return CalendarDate{}, &DateError{y, m, d, fmt.Sprintf("day out of range 1..%d", n)}
	}
	return CalendarDate{Year: y, Month: m, Day: d}, nil
}

// MustDate is NewCalendarDate for literals in tests and tables.
func MustDate(y, m, d int) CalendarDate {
	cd, err := NewCalendarDate(y, m, d)
	if err != nil {
		panic(err)
	}
	return cd
}

// ParseCalendarDate parses "YYYY-MM-DD". Unpadded month and day
// ("1979-11-6") are accepted, as are "/" and "." separators.
func ParseCalendarDate(s string) (CalendarDate, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '-' || r == '/' || r == '.'
	})
	if len(fields) != 3 {
		return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}

	var parts [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
		}
		parts[i] = n
	}
	return NewCalendarDate(parts[0], parts[1], parts[2])
}

// IsLeapYear applies the Gregorian leap-year rule.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the length of month m in year y, or 0 for an
// out-of-range month.
func DaysInMonth(y, m int) int {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(y) {
			return 29
		}
		return 28
	}
	return 0
}

// String renders the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (earlier for negative n).
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := d.Time().AddDate(0, 0, n)
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Compare returns -1, 0 or 1 as d is before, equal to or after o.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	}
	return sign(d.Day - o.Day)
}

// DaysUntil returns the number of days from d to o.
func (d CalendarDate) DaysUntil(o CalendarDate) int {
	return o.ordinal() - d.ordinal()
}

// ordinal counts days since 1970-01-01 in the proleptic Gregorian calendar.
func (d CalendarDate) ordinal() int {
	y, m := d.Year, d.Month
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
