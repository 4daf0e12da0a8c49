//go:build wireinject
// +build wireinject

package di

import (
	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/infras/redis"
	bookingHandler "weekgrid/internal/handlers/booking"
	rosterHandler "weekgrid/internal/handlers/roster"
	weekHandler "weekgrid/internal/handlers/week"
	"weekgrid/shared/cache"
	"weekgrid/transport/http"
	"weekgrid/transport/http/middleware"
	"weekgrid/transport/http/router"

	"weekgrid/internal/domains/booking/policy"
	bookingService "weekgrid/internal/domains/booking/service"
	bookingStore "weekgrid/internal/domains/booking/store"

	rosterService "weekgrid/internal/domains/roster/service"
	rosterStore "weekgrid/internal/domains/roster/store"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.MaybeNew,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	policy.FromConfig,
	bookingStore.New,
	bookingService.New,
)

var rosterDomain = wire.NewSet(
	rosterStore.New,
	rosterService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	rosterDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	rosterHandler.New,
	weekHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
