package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
)

// Remote reaches a weekgrid server over its /bookings surface, so a caller
// can swap the local backends for shared persistence without changing any
// call site. Transport failures surface immediately; there is no retry and
// no speculative local state to roll back.
type Remote struct {
	baseURL string
	client  *http.Client
	otel    otel.Otel
}

func NewRemote(baseURL string, timeout time.Duration, ot otel.Otel) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		otel:    ot,
	}
}

func (r *Remote) ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".remote.ListForWeek")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)

	endpoint := r.baseURL + "/bookings?" + url.Values{constant.RequestParamWeekKey: {weekKey}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, failure.BadGateway(err) //nolint:wrapcheck
	}

	resp, err := r.client.Do(req)
	if err != nil {
		scope.TraceError(err)

		return nil, failure.BadGateway(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readFailure(resp)
	}

	var records []dto.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, failure.BadGateway(fmt.Errorf("decoding booking list: %w", err)) //nolint:wrapcheck
	}

	bookings := make([]model.Booking, 0, len(records))

	for _, record := range records {
		booking, err := record.ToModel()
		if err != nil {
			return nil, failure.BadGateway(fmt.Errorf("malformed booking %s: %w", record.ID, err)) //nolint:wrapcheck
		}

		// Guard against responses for a different week: a record that does
		// not carry the requested key is discarded, never applied.
		if booking.WeekKey != weekKey {
			continue
		}

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// Create submits the draft; the server assigns the id and applies its own
// configured slot policy, so exclusiveTitle is not transmitted.
func (r *Remote) Create(ctx context.Context, booking model.Booking, _ bool) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".remote.Create")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, booking.WeekKey)

	payload, err := json.Marshal(dto.CreateBookingRequest{
		WeekKey:       booking.WeekKey,
		Title:         booking.Title,
		DayDate:       booking.DayDate.Format(constant.DateOnlyFormat),
		StartHour:     booking.StartHour,
		DurationHours: booking.DurationHours,
	})
	if err != nil {
		return model.Booking{}, failure.InternalError(fmt.Errorf("encoding booking draft: %w", err)) //nolint:wrapcheck
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/bookings", bytes.NewReader(payload))
	if err != nil {
		return model.Booking{}, failure.BadGateway(err) //nolint:wrapcheck
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := r.client.Do(req)
	if err != nil {
		scope.TraceError(err)

		return model.Booking{}, failure.BadGateway(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return model.Booking{}, readFailure(resp)
	}

	var record dto.BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return model.Booking{}, failure.BadGateway(fmt.Errorf("decoding created booking: %w", err)) //nolint:wrapcheck
	}

	created, err := record.ToModel()
	if err != nil {
		return model.Booking{}, failure.BadGateway(fmt.Errorf("malformed created booking: %w", err)) //nolint:wrapcheck
	}

	return created, nil
}

func (r *Remote) Delete(ctx context.Context, id, weekKey string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".remote.Delete")
	defer scope.End()

	params := url.Values{constant.RequestParamID: {id}}
	if weekKey != "" {
		params.Set(constant.RequestParamWeekKey, weekKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.baseURL+"/bookings?"+params.Encode(), nil)
	if err != nil {
		return failure.BadGateway(err) //nolint:wrapcheck
	}

	resp, err := r.client.Do(req)
	if err != nil {
		scope.TraceError(err)

		return failure.BadGateway(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readFailure(resp)
	}

	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

// readFailure translates an error response into the shared failure
// taxonomy, preserving the server's message text.
func readFailure(resp *http.Response) error {
	var body errorBody

	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	case http.StatusConflict:
		return failure.Conflict(msg) //nolint:wrapcheck
	case http.StatusNotFound:
		return failure.NotFound(msg) //nolint:wrapcheck
	default:
		return failure.BadGateway(fmt.Errorf("remote store: %s", msg)) //nolint:wrapcheck
	}
}
