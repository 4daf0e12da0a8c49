package policy

import (
	"fmt"

	"weekgrid/config"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/failure"
	"weekgrid/shared/weekcal"
)

// Policy is the pre-create gate for booking drafts. Which rules apply is
// configuration, not code: the one-per-week rule in particular differs
// between deployments, so it is an explicit switch.
type Policy struct {
	OnePerWeek    bool
	StartHourMin  int
	StartHourMax  int
	DayEndHour    int
	DurationHours int
}

func FromConfig(cfg *config.Config) Policy {
	return Policy{
		OnePerWeek:    cfg.Policy.OnePerWeek,
		StartHourMin:  cfg.Policy.StartHourMin,
		StartHourMax:  cfg.Policy.StartHourMax,
		DayEndHour:    cfg.Policy.DayEndHour,
		DurationHours: cfg.Policy.DurationHours,
	}
}

// Validate rejects a draft that breaks a slot rule. The one-per-week rule is
// not checked here; it is enforced atomically at insert time by the store so
// that two near-simultaneous submissions cannot both pass a read-then-write
// check.
func (p Policy) Validate(b model.Booking) error {
	if b.Title == "" {
		return failure.BadRequestFromString("title is required")
	}

	if b.DurationHours != p.DurationHours {
		return failure.BadRequestFromString(fmt.Sprintf("blocks are fixed at %d hours", p.DurationHours))
	}

	if b.StartHour < p.StartHourMin || b.StartHour > p.StartHourMax {
		return failure.BadRequestFromString(fmt.Sprintf("startHour must be between %d and %d", p.StartHourMin, p.StartHourMax))
	}

	if b.EndHour() > p.DayEndHour {
		return failure.BadRequestFromString(fmt.Sprintf("block may not run past %02d:00", p.DayEndHour))
	}

	if derived := weekcal.Key(b.DayDate); derived != b.WeekKey {
		return failure.BadRequestFromString(fmt.Sprintf("dayDate %s falls in week %s, not %s", b.DayDate.Format("2006-01-02"), derived, b.WeekKey))
	}

	return nil
}
