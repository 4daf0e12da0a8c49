package mocks

import (
	"context"

	"weekgrid/infras/otel"
)

// Noop tracer plumbing for tests.

type otelImpl struct{}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

type scopeImpl struct{}

func (s *scopeImpl) End() {}

func (s *scopeImpl) TraceError(_ error) {}

func (s *scopeImpl) TraceIfError(_ error) {}

func (s *scopeImpl) AddEvent(_ string) {}

func (s *scopeImpl) SetAttribute(_ string, _ any) {}

func (s *scopeImpl) SetAttributes(_ map[string]any) {}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
