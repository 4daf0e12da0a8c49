package model

import (
	"time"

	"weekgrid/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldWeekKey       = "week_key"
	FieldTitle         = "title"
	FieldDayDate       = "day_date"
	FieldStartHour     = "start_hour"
	FieldDurationHours = "duration_hours"
)

// Booking is one person's claim on a fixed-length block on one day.
// WeekKey is redundant with DayDate but stored for fast week lookups; the
// service guarantees the two agree before a record reaches a store.
type Booking struct {
	ID            string    `db:"id" json:"id"`
	WeekKey       string    `db:"week_key" json:"weekKey"`
	Title         string    `db:"title" json:"title"`
	DayDate       time.Time `db:"day_date" json:"dayDate"`
	StartHour     int       `db:"start_hour" json:"startHour"`
	DurationHours int       `db:"duration_hours" json:"durationHours"`
	model.Metadata
}

// EndHour is the exclusive end of the block within the day.
func (b Booking) EndHour() int {
	return b.StartHour + b.DurationHours
}
