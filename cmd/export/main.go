package main

import (
	"context"
	"flag"
	"os"

	"weekgrid/config"
	"weekgrid/infras/otel"
	"weekgrid/infras/postgres"
	"weekgrid/internal/domains/booking/policy"
	"weekgrid/internal/domains/booking/service"
	"weekgrid/internal/domains/booking/store"
	"weekgrid/shared/cache"
	"weekgrid/shared/logger"
	"weekgrid/shared/timezone"
	"weekgrid/shared/weekcal"

	"github.com/rs/zerolog/log"
)

// Writes one week of bookings as CSV to stdout, against whichever store
// backend is configured. Defaults to the current week. A one-shot read
// never touches the cache, so the service gets a pass-through one.
func main() {
	weekKey := flag.String("week", "", "ISO week key (YYYY-Www), defaults to the current week")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	key := *weekKey
	if key == "" {
		key = weekcal.Key(timezone.Now())
	}

	ot := otel.New(cfg)

	st := store.New(cfg, postgres.MaybeNew(cfg), ot)
	svc := service.New(st, policy.FromConfig(cfg), cfg, cache.NewRedisCache(nil, ot), ot)

	payload, err := svc.ExportWeekCSV(context.Background(), key)
	if err != nil {
		log.Fatal().Err(err).Str("weekKey", key).Msg("Failed to export week")
	}

	if _, err := os.Stdout.Write(payload); err != nil {
		log.Fatal().Err(err).Msg("Failed to write CSV to stdout")
	}
}
