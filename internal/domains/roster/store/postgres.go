package store

import (
	"context"
	"errors"
	"fmt"

	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/internal/domains/roster/model"
	"weekgrid/shared/constant"
	"weekgrid/shared/logger"
	"weekgrid/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	queryListPeople = `SELECT id, name, created_at, created_by FROM people ORDER BY name`

	queryInsertPerson = `INSERT INTO people (id, name, created_at, created_by)
		VALUES (:id, :name, :created_at, :created_by)`

	queryDeletePerson = `DELETE FROM people WHERE id = $1`
)

// Postgres stores the roster in the people table; name uniqueness is a
// schema constraint, so a duplicate insert maps straight to a conflict.
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

func (p *Postgres) List(ctx context.Context) ([]model.Person, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.postgres.List")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, queryListPeople)

	people := []model.Person{}
	if err := p.db.Read.SelectContext(ctx, &people, queryListPeople); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	return people, nil
}

func (p *Postgres) Add(ctx context.Context, person model.Person) (model.Person, error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.postgres.Add")
	defer scope.End()

	if person.ID == "" {
		person.ID = uuid.NewString()
	}

	if person.CreatedAt.IsZero() {
		person.CreatedAt = timezone.Now()
	}

	if _, err := p.db.Write.NamedExecContext(ctx, queryInsertPerson, person); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return model.Person{}, duplicateName(person.Name)
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Person{}, fmt.Errorf("failed to insert person: %w", err)
	}

	return person, nil
}

func (p *Postgres) Remove(ctx context.Context, id string) error {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.postgres.Remove")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDeletePerson)

	if _, err := p.db.Write.ExecContext(ctx, queryDeletePerson, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete person %s: %w", id, err)
	}

	return nil
}
