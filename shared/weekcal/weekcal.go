package weekcal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Bookings are bucketed by ISO-8601 week key, so every derivation of
// "week of date d" must agree exactly; a drift between two computations
// silently files a booking under the wrong week. All derivations below go
// through time.ISOWeek, which implements the ISO rules (week 1 contains the
// year's first Thursday, weeks run Monday..Sunday, the week-year near
// January 1 may differ from the calendar year).

// KeyPattern matches a well-formed week key such as "2025-W01".
const KeyPattern = `^\d{4}-W\d{2}$`

var keyRegexp = regexp.MustCompile(KeyPattern)

// Key returns the week key of t, formatted as YYYY-Www with the ISO
// week-year and a zero-padded week number.
func Key(t time.Time) string {
	year, week := t.ISOWeek()

	return fmt.Sprintf("%04d-W%02d", year, week)
}

// StartOfWeek returns the Monday 00:00 of t's ISO week in t's location.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	year, month, day := t.AddDate(0, 0, 1-weekday).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Dates expands a week's Monday into the ordered Mon..Sun sequence. The
// sequence is regenerated per call, never cached.
func Dates(monday time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = AddDays(monday, i)
	}

	return dates
}

// ValidKey reports whether key is a well-formed week key with a plausible
// week number.
func ValidKey(key string) bool {
	_, _, err := ParseKey(key)

	return err == nil
}

// ParseKey splits a week key into its ISO week-year and week number.
func ParseKey(key string) (int, int, error) {
	if !keyRegexp.MatchString(key) {
		return 0, 0, fmt.Errorf("invalid week key %q", key)
	}

	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid week key %q: %w", key, err)
	}

	week, err := strconv.Atoi(key[6:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid week key %q: %w", key, err)
	}

	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("week number out of range in %q", key)
	}

	return year, week, nil
}
