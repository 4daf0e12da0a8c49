package store

import (
	"context"
	"fmt"

	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/constant"
	"weekgrid/shared/logger"
	"weekgrid/shared/timezone"

	"github.com/google/uuid"
)

const (
	queryListForWeek = `SELECT id, week_key, title, day_date, start_hour, duration_hours, created_at, created_by
		FROM bookings WHERE week_key = $1`

	queryInsert = `INSERT INTO bookings (id, week_key, title, day_date, start_hour, duration_hours, created_at, created_by)
		VALUES (:id, :week_key, :title, :day_date, :start_hour, :duration_hours, :created_at, :created_by)`

	queryExistsTitle = `SELECT EXISTS (SELECT 1 FROM bookings WHERE week_key = $1 AND title = $2)`

	queryDelete = `DELETE FROM bookings WHERE id = $1`

	// The advisory lock serializes conditional inserts for one (week, title)
	// pair without a schema-level unique constraint, which cannot exist
	// because the one-per-week rule is a runtime switch.
	queryAdvisoryLock = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// Postgres is the durable backend, schema managed by the migrate runner.
type Postgres struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, ot otel.Otel) *Postgres {
	return &Postgres{
		db:   db,
		otel: ot,
	}
}

func (p *Postgres) ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.ListForWeek")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)
	scope.SetAttribute(constant.OtelQueryAttributeKey, queryListForWeek)

	bookings := []model.Booking{}
	if err := p.db.Read.SelectContext(ctx, &bookings, queryListForWeek, weekKey); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list bookings for week %s: %w", weekKey, err)
	}

	return bookings, nil
}

func (p *Postgres) Create(ctx context.Context, booking model.Booking, exclusiveTitle bool) (model.Booking, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.Create")
	defer scope.End()
	scope.SetAttribute(constant.OtelWeekKeyAttribute, booking.WeekKey)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = timezone.Now()
	}

	tx, err := p.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to begin booking insert: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if exclusiveTitle {
		lockKey := booking.WeekKey + "/" + booking.Title
		if _, err := tx.ExecContext(ctx, queryAdvisoryLock, lockKey); err != nil {
			return model.Booking{}, fmt.Errorf("failed to take booking lock: %w", err)
		}

		var exists bool
		if err := tx.GetContext(ctx, &exists, queryExistsTitle, booking.WeekKey, booking.Title); err != nil {
			return model.Booking{}, fmt.Errorf("failed to check for duplicate booking: %w", err)
		}

		if exists {
			return model.Booking{}, duplicateTitle(booking.Title, booking.WeekKey)
		}
	}

	if _, err := tx.NamedExecContext(ctx, queryInsert, booking); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Booking{}, fmt.Errorf("failed to commit booking insert: %w", err)
	}

	return booking, nil
}

func (p *Postgres) Delete(ctx context.Context, id, _ string) error {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".postgres.Delete")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDelete)

	// Deleting an absent id affects zero rows, which is the contract, so the
	// result is not inspected.
	if _, err := p.db.Write.ExecContext(ctx, queryDelete, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}

	return nil
}
