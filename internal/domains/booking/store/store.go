package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/failure"

	"github.com/rs/zerolog/log"
)

// SnapshotFileName is the versioned snapshot name used by the file backend.
// Bump the version suffix when the snapshot layout changes so old files are
// left untouched instead of being misread.
const SnapshotFileName = "bookings_v2.json"

// Store is the booking persistence contract. Every backend behaves
// identically from the caller's perspective: listing an unknown week yields
// an empty slice, deleting an absent id is a no-op, and a failed Create
// signals a storage or conflict error without partial writes.
type Store interface {
	// ListForWeek returns all bookings stored under weekKey, order unspecified.
	ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error)
	// Create assigns an id if the draft has none, persists the record and
	// returns it. With exclusiveTitle set, the insert only happens when no
	// booking with the same (weekKey, title) exists; the check and the
	// insert are a single atomic step.
	Create(ctx context.Context, booking model.Booking, exclusiveTitle bool) (model.Booking, error)
	// Delete removes the record with the given id. weekKey is a lookup hint
	// and may be empty. Absent ids are ignored.
	Delete(ctx context.Context, id, weekKey string) error
}

// New selects the backend from configuration. conn may be nil unless the
// postgres backend is selected.
func New(cfg *config.Config, conn *postgres.Connection, ot otel.Otel) Store {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return NewMemory(ot)
	case config.StoreBackendFile:
		st, err := NewFile(filepath.Join(cfg.Store.File.Dir, SnapshotFileName), ot)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open file booking store")
		}

		return st
	case config.StoreBackendPostgres:
		return NewPostgres(conn, ot)
	case config.StoreBackendRemote:
		return NewRemote(cfg.Store.Remote.BaseURL, time.Duration(cfg.Store.Remote.TimeoutSeconds)*time.Second, ot)
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown booking store backend")

		return nil
	}
}

func duplicateTitle(title, weekKey string) error {
	return failure.Conflict(fmt.Sprintf("%s already has a booking in week %s", title, weekKey)) //nolint:wrapcheck
}
