package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekgrid/infras/otel/mocks"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/internal/domains/booking/store"
)

func TestPoller_RefreshAppliesSelectedWeek(t *testing.T) {
	st := store.NewMemory(mocks.NewOtel())
	ctx := context.Background()

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	_, err := st.Create(ctx, draftBooking("2025-W46", "Alex", monday, 8), false)
	require.NoError(t, err)

	p := store.NewPoller(st, time.Minute)
	p.SetWeek("2025-W46")

	var gotWeek string
	var gotBookings []model.Booking

	require.NoError(t, p.Refresh(ctx, func(weekKey string, bookings []model.Booking) {
		gotWeek = weekKey
		gotBookings = bookings
	}))

	assert.Equal(t, "2025-W46", gotWeek)
	assert.Len(t, gotBookings, 1)
}

func TestPoller_NoSelectedWeekIsNoop(t *testing.T) {
	p := store.NewPoller(store.NewMemory(mocks.NewOtel()), time.Minute)

	applied := false
	require.NoError(t, p.Refresh(context.Background(), func(string, []model.Booking) {
		applied = true
	}))

	assert.False(t, applied)
}

// weekSwitchingStore flips the poller's selection while a list is in flight,
// simulating a user changing weeks before the response lands.
type weekSwitchingStore struct {
	inner  store.Store
	poller **store.Poller
	target string
}

func (s *weekSwitchingStore) ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error) {
	(*s.poller).SetWeek(s.target)

	return s.inner.ListForWeek(ctx, weekKey)
}

func (s *weekSwitchingStore) Create(ctx context.Context, booking model.Booking, exclusiveTitle bool) (model.Booking, error) {
	return s.inner.Create(ctx, booking, exclusiveTitle)
}

func (s *weekSwitchingStore) Delete(ctx context.Context, id, weekKey string) error {
	return s.inner.Delete(ctx, id, weekKey)
}

func TestPoller_DiscardsStaleResponse(t *testing.T) {
	mem := store.NewMemory(mocks.NewOtel())
	ctx := context.Background()

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	_, err := mem.Create(ctx, draftBooking("2025-W46", "Alex", monday, 8), false)
	require.NoError(t, err)

	var p *store.Poller
	switching := &weekSwitchingStore{inner: mem, poller: &p, target: "2025-W47"}
	p = store.NewPoller(switching, time.Minute)
	p.SetWeek("2025-W46")

	applied := false
	require.NoError(t, p.Refresh(ctx, func(string, []model.Booking) {
		applied = true
	}))

	// The selection moved to W47 while W46 was being listed, so the W46
	// snapshot must not be applied.
	assert.False(t, applied)
	assert.Equal(t, "2025-W47", p.Week())
}
