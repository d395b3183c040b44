package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour

	longDateLayout = "02 January 2006"
)

var checkInPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// CheckInDate is a calendar date without a time-of-day component.
// All arithmetic treats it as midnight UTC.
type CheckInDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCheckInDate returns the date for the given fields, or ErrMalformedDate if they do not
// form a real calendar date.
func NewCheckInDate(year int, month time.Month, dayOfMonth int) (CheckInDate, error) {
	t := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != dayOfMonth {
		return CheckInDate{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrMalformedDate, year, int(month), dayOfMonth)
	}

	return CheckInDate{Year: year, Month: month, Day: dayOfMonth}, nil
}

// CheckInDateOf returns the UTC calendar date containing t.
func CheckInDateOf(t time.Time) CheckInDate {
	u := t.UTC()
	return CheckInDate{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// ParseCheckInDate parses text in DD/MM/YYYY form.
func ParseCheckInDate(text string) (CheckInDate, error) {
	m := checkInPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return CheckInDate{}, fmt.Errorf("%w: %q does not match DD/MM/YYYY", ErrMalformedDate, text)
	}

	dayOfMonth, err := strconv.Atoi(m[1])
	if err != nil {
		return CheckInDate{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, text, err)
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return CheckInDate{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, text, err)
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return CheckInDate{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, text, err)
	}

	return NewCheckInDate(year, time.Month(month), dayOfMonth)
}

func (d CheckInDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Format renders the date in the booking store's DD/MM/YYYY form.
func (d CheckInDate) Format() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// LongForm renders the date for humans, e.g. "05 January 2026".
func (d CheckInDate) LongForm() string {
	return d.Time().Format(longDateLayout)
}

func (d CheckInDate) String() string {
	return d.Format()
}

// DaysBefore returns the instant that is n whole days before the date's midnight.
func (d CheckInDate) DaysBefore(n int) time.Time {
	return d.Time().AddDate(0, 0, -n)
}

// DaysBetween returns ceil((date - now) / 24h). A check-in 99.1 days away counts as 100.
func DaysBetween(date CheckInDate, now time.Time) int {
	diff := date.Time().Sub(now)

	days := int(diff / day)
	if diff%day > 0 {
		days++
	}

	return days
}
