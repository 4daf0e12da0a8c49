package model

import "time"

// Metadata carries creation bookkeeping. Bookings are never mutated in
// place (a change is delete-then-create), so no modification fields exist.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}
