package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/internal/domains/booking/policy"
	"weekgrid/internal/domains/booking/store"
	"weekgrid/shared"
	"weekgrid/shared/cache"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
	"weekgrid/shared/weekcal"

	"github.com/rs/zerolog/log"
)

const (
	cacheWeekBookings = "booking:week"
)

var csvHeader = []string{"Person", "Day", "Date", "Start", "End"}

type Booking interface {
	ListWeek(ctx context.Context, weekKey string) ([]dto.BookingResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id, weekKey string) error
	ExportWeekCSV(ctx context.Context, weekKey string) ([]byte, error)
}

type serviceImpl struct {
	store store.Store
	pol   policy.Policy
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(st store.Store, pol policy.Policy, cfg *config.Config, redisCache cache.RedisCache, ot otel.Otel) Booking {
	return &serviceImpl{
		store: st,
		pol:   pol,
		cfg:   cfg,
		cache: redisCache,
		otel:  ot,
	}
}

func (s *serviceImpl) ListWeek(ctx context.Context, weekKey string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListWeek")
	defer scope.End()
	defer scope.TraceIfError(err)
	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)

	if !weekcal.ValidKey(weekKey) {
		return nil, failure.BadRequestFromString(fmt.Sprintf("invalid week key %q", weekKey)) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheWeekBookings, weekKey)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for week bookings")

		return res, nil
	}

	bookings, err := s.store.ListForWeek(ctx, weekKey)
	if err != nil {
		log.Error().Err(err).Str("weekKey", weekKey).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	sortForGrid(bookings)
	res = dto.FromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save week bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)
	scope.SetAttribute(constant.OtelWeekKeyAttribute, req.WeekKey)

	draft, err := req.ToModel()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if err = s.pol.Validate(draft); err != nil {
		return res, err
	}

	created, err := s.store.Create(ctx, draft, s.pol.OnePerWeek)
	if err != nil {
		if failure.IsConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.AddEvent("Booking created for " + created.Title)

	s.invalidateWeek(ctx, created.WeekKey)

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, weekKey string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.store.Delete(ctx, id, weekKey); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateWeek(ctx, weekKey)

	return nil
}

// ExportWeekCSV renders a week's bookings as CSV: header row, a blank
// separator row, then one row per booking sorted by person name.
func (s *serviceImpl) ExportWeekCSV(ctx context.Context, weekKey string) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportWeekCSV")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !weekcal.ValidKey(weekKey) {
		return nil, failure.BadRequestFromString(fmt.Sprintf("invalid week key %q", weekKey)) //nolint:wrapcheck
	}

	bookings, err := s.store.ListForWeek(ctx, weekKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for export: %w", err)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Title != bookings[j].Title {
			return bookings[i].Title < bookings[j].Title
		}

		if !bookings[i].DayDate.Equal(bookings[j].DayDate) {
			return bookings[i].DayDate.Before(bookings[j].DayDate)
		}

		return bookings[i].StartHour < bookings[j].StartHour
	})

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{csvHeader, {""}}
	for _, b := range bookings {
		rows = append(rows, []string{
			b.Title,
			b.DayDate.Weekday().String(),
			b.DayDate.Format(constant.DateOnlyFormat),
			fmt.Sprintf(constant.HourFormat, b.StartHour),
			fmt.Sprintf(constant.HourFormat, b.EndHour()),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write export rows: %w", err)
	}

	return buf.Bytes(), nil
}

// sortForGrid orders a week snapshot for stable rendering; callers are free
// to re-sort.
func sortForGrid(bookings []model.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].DayDate.Equal(bookings[j].DayDate) {
			return bookings[i].DayDate.Before(bookings[j].DayDate)
		}

		if bookings[i].StartHour != bookings[j].StartHour {
			return bookings[i].StartHour < bookings[j].StartHour
		}

		return bookings[i].Title < bookings[j].Title
	})
}

func (s *serviceImpl) invalidateWeek(ctx context.Context, weekKey string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if weekKey == "" {
			shared.InvalidateCaches(c, s.cache, cacheWeekBookings)

			return
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheWeekBookings, weekKey)); err != nil {
			log.Error().Err(err).Str("weekKey", weekKey).Msg("failed to invalidate week cache")
		}
	}()
}
