package weekcal_test

import (
	"regexp"
	"testing"
	"time"

	"weekgrid/shared/weekcal"

	"github.com/stretchr/testify/assert"
)

func TestKeyFormatAndStability(t *testing.T) {
	pattern := regexp.MustCompile(weekcal.KeyPattern)

	dates := []time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		key := weekcal.Key(d)
		assert.Regexp(t, pattern, key)
		assert.Equal(t, key, weekcal.Key(d), "key must be stable under re-computation")
	}
}

func TestKeyYearBoundary(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		// Jan 1 2025 is a Wednesday; the week containing it is week 1 of 2025.
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-W01"},
		// Dec 30 2024 is the Monday of the same week, so it already belongs
		// to week-year 2025.
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
		// Jan 1 2021 is a Friday; its week's Thursday falls in 2020,
		// which had 53 ISO weeks.
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), "2021-W01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, weekcal.Key(tt.date), "key for %s", tt.date.Format("2006-01-02"))
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		date time.Time
		want time.Time
	}{
		{time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC), time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the week started six days earlier.
		{time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
		// A Monday is its own week start.
		{time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := weekcal.StartOfWeek(tt.date)
		assert.True(t, tt.want.Equal(got), "start of week for %s: got %s", tt.date, got)
		assert.Equal(t, time.Monday, got.Weekday())
	}
}

func TestDatesSequence(t *testing.T) {
	monday := weekcal.StartOfWeek(time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC))
	dates := weekcal.Dates(monday)

	assert.Len(t, dates, 7)
	assert.Equal(t, time.Monday, dates[0].Weekday())

	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].Equal(weekcal.AddDays(dates[i-1], 1)), "dates must increase by one day")
	}

	// The Thursday of the week determines the week-year used in the key.
	thursday := dates[3]
	assert.Equal(t, time.Thursday, thursday.Weekday())
	assert.Equal(t, weekcal.Key(thursday), weekcal.Key(monday))
}

func TestAddDays(t *testing.T) {
	got := weekcal.AddDays(time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), 2)
	assert.Equal(t, time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC), got)
}

func TestParseKey(t *testing.T) {
	year, week, err := weekcal.ParseKey("2025-W01")
	assert.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 1, week)

	for _, bad := range []string{"", "2025-W1", "2025W01", "2025-W00", "2025-W54", "25-W01", "2025-W01x"} {
		_, _, err := weekcal.ParseKey(bad)
		assert.Error(t, err, "key %q must be rejected", bad)
	}

	assert.True(t, weekcal.ValidKey("2020-W53"))
	assert.False(t, weekcal.ValidKey("2020-W99"))
}
