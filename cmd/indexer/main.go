package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mediqueue/backend/internal/adapters/database"
	"github.com/mediqueue/backend/internal/adapters/memory"
	"github.com/mediqueue/backend/internal/adapters/search"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	"github.com/mediqueue/backend/internal/infrastructure/clients/typesense"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	"github.com/mediqueue/backend/internal/seed"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("mediqueue-indexer", "development")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("mediqueue-indexer", cfg.Server.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Str("interval", intervalValue).Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			return
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	var facilityRepo repositories.FacilityRepository
	if cfg.Storage.Backend == config.StoragePostgres {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return err
		}
		defer pgClient.Close()
		facilityRepo = database.NewFacilityAdapter(pgClient)
	} else {
		facilityRepo = memory.NewFacilityRepository(seed.Facilities())
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		if err := tsClient.DropSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to drop facilities collection")
		} else {
			log.Info().Msg("Dropped facilities collection")
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	facilities, err := facilityRepo.List(ctx, repositories.FacilityFilter{})
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	indexed, failed := 0, 0
	for _, facility := range facilities {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := adapter.Index(ctx, facility); err != nil {
			log.Warn().Err(err).Str("facility_id", facility.ID).Msg("Failed to index facility")
			failed++
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Int("failed", failed).Str("storage", cfg.Storage.Backend).Msg("Facilities indexed")
	return nil
}
