package model

import (
	"weekgrid/shared/model"
)

const (
	TableName  = "people"
	EntityName = "person"

	FieldID   = "id"
	FieldName = "name"
)

// Person is a roster entry used to populate the widget's selection control.
// There is no referential integrity with bookings: removing a person leaves
// their bookings untouched, and bookings may name people who were never on
// the roster.
type Person struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	model.Metadata
}
