package store

import (
	"context"
	"sync"
	"time"

	"weekgrid/internal/domains/booking/model"

	"github.com/rs/zerolog/log"
)

// Poller re-lists the currently selected week on a fixed interval and hands
// the snapshot to an apply callback. A response that arrives after the
// selection has moved to another week is discarded; without that guard an
// in-flight refresh for the previous week would overwrite the view.
type Poller struct {
	store    Store
	interval time.Duration

	mu   sync.RWMutex
	week string
}

func NewPoller(st Store, interval time.Duration) *Poller {
	return &Poller{
		store:    st,
		interval: interval,
	}
}

// SetWeek changes the selected week. In-flight refreshes for the previous
// week are not cancelled; their responses fail the week check and are dropped.
func (p *Poller) SetWeek(weekKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.week = weekKey
}

func (p *Poller) Week() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.week
}

// Refresh performs one list cycle. The snapshot is applied only when the
// selected week is still the one the request was issued for.
func (p *Poller) Refresh(ctx context.Context, apply func(weekKey string, bookings []model.Booking)) error {
	week := p.Week()
	if week == "" {
		return nil
	}

	bookings, err := p.store.ListForWeek(ctx, week)
	if err != nil {
		return err
	}

	if p.Week() != week {
		return nil
	}

	apply(week, bookings)

	return nil
}

// Run polls until ctx is cancelled. A failed refresh leaves the last applied
// snapshot in place; there is no retry beyond the next tick.
func (p *Poller) Run(ctx context.Context, apply func(weekKey string, bookings []model.Booking)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx, apply); err != nil {
				log.Error().Err(err).Str("weekKey", p.Week()).Msg("failed to refresh week")
			}
		}
	}
}
