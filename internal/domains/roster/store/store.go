package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/internal/domains/roster/model"
	"weekgrid/shared/failure"

	"github.com/rs/zerolog/log"
)

// SnapshotFileName is the versioned snapshot name used by the file backend.
const SnapshotFileName = "people_v1.json"

// Store persists the roster. Names are unique case-sensitively; adding a
// duplicate is a conflict, removing an absent id is a no-op.
type Store interface {
	List(ctx context.Context) ([]model.Person, error)
	Add(ctx context.Context, person model.Person) (model.Person, error)
	Remove(ctx context.Context, id string) error
}

// New selects the backend from configuration, mirroring the booking store
// so both domains always share one persistence medium.
func New(cfg *config.Config, conn *postgres.Connection, ot otel.Otel) Store {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return NewMemory(ot)
	case config.StoreBackendFile:
		st, err := NewFile(filepath.Join(cfg.Store.File.Dir, SnapshotFileName), ot)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open file roster store")
		}

		return st
	case config.StoreBackendPostgres:
		return NewPostgres(conn, ot)
	case config.StoreBackendRemote:
		return NewRemote(cfg.Store.Remote.BaseURL, time.Duration(cfg.Store.Remote.TimeoutSeconds)*time.Second, ot)
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown roster store backend")

		return nil
	}
}

func duplicateName(name string) error {
	return failure.Conflict(fmt.Sprintf("%s is already on the roster", name)) //nolint:wrapcheck
}
