package dto

import (
	"fmt"
	"time"

	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/constant"
	gModel "weekgrid/shared/model"
	"weekgrid/shared/timezone"
)

type CreateBookingRequest struct {
	WeekKey       string `json:"weekKey"       validate:"required,weekkey"`
	Title         string `json:"title"         validate:"required,max=100"`
	DayDate       string `json:"dayDate"       validate:"required,dateonly"`
	StartHour     int    `json:"startHour"     validate:"gte=0,lte=23"`
	DurationHours int    `json:"durationHours" validate:"required,gte=1,lte=24"`
}

// ToModel parses the wire representation into a draft record. The id stays
// empty; whichever store persists the draft assigns it.
func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	dayDate, err := timezone.Parse(constant.DateOnlyFormat, c.DayDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("parsing dayDate: %w", err)
	}

	return model.Booking{
		WeekKey:       c.WeekKey,
		Title:         c.Title,
		DayDate:       dayDate,
		StartHour:     c.StartHour,
		DurationHours: c.DurationHours,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}, nil
}

type BookingResponse struct {
	ID            string `json:"id"`
	WeekKey       string `json:"weekKey"`
	Title         string `json:"title"`
	DayDate       string `json:"dayDate"`
	StartHour     int    `json:"startHour"`
	DurationHours int    `json:"durationHours"`
	End           string `json:"end"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.WeekKey = model.WeekKey
	r.Title = model.Title
	r.DayDate = model.DayDate.Format(constant.DateOnlyFormat)
	r.StartHour = model.StartHour
	r.DurationHours = model.DurationHours
	r.End = fmt.Sprintf(constant.HourFormat, model.EndHour())
}

// ToModel converts a wire record back into the domain shape; the remote
// store uses it to read the HTTP API it shares with this service.
func (r *BookingResponse) ToModel() (model.Booking, error) {
	dayDate, err := timezone.Parse(constant.DateOnlyFormat, r.DayDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("parsing dayDate: %w", err)
	}

	return model.Booking{
		ID:            r.ID,
		WeekKey:       r.WeekKey,
		Title:         r.Title,
		DayDate:       dayDate,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
	}, nil
}

func FromModels(models []model.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}

type WeekResponse struct {
	WeekKey string   `json:"weekKey"`
	Start   string   `json:"start"`
	Dates   []string `json:"dates"`
}

func NewWeekResponse(weekKey string, dates []time.Time) WeekResponse {
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(constant.DateOnlyFormat)
	}

	return WeekResponse{
		WeekKey: weekKey,
		Start:   formatted[0],
		Dates:   formatted,
	}
}

type DeleteResponse struct {
	Ok bool `json:"ok"`
}
