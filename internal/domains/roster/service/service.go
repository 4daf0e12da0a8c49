package service

import (
	"context"
	"fmt"

	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/internal/domains/roster/model"
	"weekgrid/internal/domains/roster/model/dto"
	"weekgrid/internal/domains/roster/store"
	"weekgrid/shared"
	"weekgrid/shared/cache"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheRoster = "roster:list"
)

type Roster interface {
	List(ctx context.Context) ([]dto.PersonResponse, error)
	Add(ctx context.Context, req dto.AddPersonRequest) (dto.PersonResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	store store.Store
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(st store.Store, cfg *config.Config, redisCache cache.RedisCache, ot otel.Otel) Roster {
	return &serviceImpl{
		store: st,
		cfg:   cfg,
		cache: redisCache,
		otel:  ot,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.PersonResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roster.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheRoster, &res)
	if err == nil {
		return res, nil
	}

	people, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list roster")

		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	res = dto.FromModels(people)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheRoster, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save roster to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddPersonRequest) (res dto.PersonResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roster.Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	added, err := s.store.Add(ctx, model.Person{Name: req.Name})
	if err != nil {
		if failure.IsConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to add person")

		return res, fmt.Errorf("failed to add person: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(added)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roster.Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.store.Remove(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to remove person")

		return fmt.Errorf("failed to remove person: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheRoster)
	}()
}
