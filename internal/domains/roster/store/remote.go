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
	"weekgrid/internal/domains/roster/model"
	"weekgrid/internal/domains/roster/model/dto"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
)

// Remote reaches a weekgrid server's /people surface.
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

func (r *Remote) List(ctx context.Context) ([]model.Person, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.remote.List")
	defer scope.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/people", nil)
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

	var records []dto.PersonResponse
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, failure.BadGateway(fmt.Errorf("decoding roster: %w", err)) //nolint:wrapcheck
	}

	people := make([]model.Person, len(records))
	for i, record := range records {
		people[i] = model.Person{ID: record.ID, Name: record.Name}
	}

	return people, nil
}

func (r *Remote) Add(ctx context.Context, person model.Person) (model.Person, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.remote.Add")
	defer scope.End()

	payload, err := json.Marshal(dto.AddPersonRequest{Name: person.Name})
	if err != nil {
		return model.Person{}, failure.InternalError(fmt.Errorf("encoding person: %w", err)) //nolint:wrapcheck
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/people", bytes.NewReader(payload))
	if err != nil {
		return model.Person{}, failure.BadGateway(err) //nolint:wrapcheck
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := r.client.Do(req)
	if err != nil {
		scope.TraceError(err)

		return model.Person{}, failure.BadGateway(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return model.Person{}, readFailure(resp)
	}

	var record dto.PersonResponse
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return model.Person{}, failure.BadGateway(fmt.Errorf("decoding created person: %w", err)) //nolint:wrapcheck
	}

	return model.Person{ID: record.ID, Name: record.Name}, nil
}

func (r *Remote) Remove(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.remote.Remove")
	defer scope.End()

	endpoint := r.baseURL + "/people/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
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
