package store

import (
	"context"
	"sync"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/constant"
	"weekgrid/shared/timezone"

	"github.com/google/uuid"
)

// Memory keeps bookings in a week-partitioned map scoped to the process
// lifetime. It is the explicit-object form of the serverless handler's
// global map: an ephemeral cache, not a database.
type Memory struct {
	mu     sync.Mutex
	weeks  map[string]map[string]model.Booking
	weekOf map[string]string
	otel   otel.Otel
}

func NewMemory(ot otel.Otel) *Memory {
	return &Memory{
		weeks:  make(map[string]map[string]model.Booking),
		weekOf: make(map[string]string),
		otel:   ot,
	}
}

func (m *Memory) ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".ListForWeek")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)

	m.mu.Lock()
	defer m.mu.Unlock()

	bookings := make([]model.Booking, 0, len(m.weeks[weekKey]))
	for _, b := range m.weeks[weekKey] {
		bookings = append(bookings, b)
	}

	return bookings, nil
}

func (m *Memory) Create(ctx context.Context, booking model.Booking, exclusiveTitle bool) (model.Booking, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Create")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, booking.WeekKey)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertLocked(booking, exclusiveTitle)
}

// insertLocked performs the conditional insert under m.mu, making the
// one-per-week check and the write a single atomic step.
func (m *Memory) insertLocked(booking model.Booking, exclusiveTitle bool) (model.Booking, error) {
	week := m.weeks[booking.WeekKey]

	if exclusiveTitle {
		for _, existing := range week {
			if existing.Title == booking.Title {
				return model.Booking{}, duplicateTitle(booking.Title, booking.WeekKey)
			}
		}
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = timezone.Now()
	}

	if week == nil {
		week = make(map[string]model.Booking)
		m.weeks[booking.WeekKey] = week
	}

	week[booking.ID] = booking
	m.weekOf[booking.ID] = booking.WeekKey

	return booking, nil
}

func (m *Memory) Delete(ctx context.Context, id, weekKey string) error {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Delete")
	defer scope.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteLocked(id, weekKey)

	return nil
}

// deleteLocked removes id and reports whether a record was removed, handing
// back the record for callers that may need to roll the removal back. The
// weekKey argument is a lookup hint only: when the hinted bucket does not
// hold the id, the week is resolved through the index, so a wrong hint never
// strands a record or desyncs the index.
func (m *Memory) deleteLocked(id, weekKey string) (model.Booking, bool) {
	if _, ok := m.weeks[weekKey][id]; !ok {
		weekKey = m.weekOf[id]
	}

	week, ok := m.weeks[weekKey]
	if !ok {
		return model.Booking{}, false
	}

	removed, ok := week[id]
	if !ok {
		return model.Booking{}, false
	}

	delete(week, id)

	if len(week) == 0 {
		delete(m.weeks, weekKey)
	}

	delete(m.weekOf, id)

	return removed, true
}

func (m *Memory) snapshotLocked() map[string]model.Booking {
	flat := make(map[string]model.Booking, len(m.weekOf))
	for _, week := range m.weeks {
		for id, b := range week {
			flat[id] = b
		}
	}

	return flat
}

func (m *Memory) restoreLocked(flat map[string]model.Booking) {
	m.weeks = make(map[string]map[string]model.Booking)
	m.weekOf = make(map[string]string, len(flat))

	for id, b := range flat {
		week := m.weeks[b.WeekKey]
		if week == nil {
			week = make(map[string]model.Booking)
			m.weeks[b.WeekKey] = week
		}

		week[id] = b
		m.weekOf[id] = b.WeekKey
	}
}
