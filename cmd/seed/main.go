package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mediqueue/backend/internal/adapters/database"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	"github.com/mediqueue/backend/internal/seed"
	"github.com/mediqueue/backend/pkg/config"
	apperrors "github.com/mediqueue/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("mediqueue-seed", "development")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("mediqueue-seed", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, strings.EqualFold(os.Getenv("RESET_DB"), "true")); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}

func run(ctx context.Context, cfg *config.Config, reset bool) error {
	facilities := seed.Facilities()
	if err := seed.Validate(facilities); err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	if err := database.Migrate(ctx, pgClient); err != nil {
		return err
	}
	log.Info().Msg("Schema applied")

	if reset {
		if err := database.Truncate(ctx, pgClient); err != nil {
			return err
		}
		log.Warn().Msg("RESET_DB=true: existing rows removed")
	}

	facilityRepo := database.NewFacilityAdapter(pgClient)
	created, skipped := 0, 0
	for _, facility := range facilities {
		if err := facilityRepo.Create(ctx, facility); err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
				skipped++
				continue
			}
			return err
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("Facilities seeded")

	if err := database.InsertWards(ctx, pgClient, seed.Wards()); err != nil {
		return err
	}
	log.Info().Int("wards", len(seed.Wards())).Msg("Wards seeded")

	location, err := cfg.Facility.Location()
	if err != nil {
		return err
	}

	appointmentRepo := database.NewAppointmentAdapter(pgClient)
	created, skipped = 0, 0
	for _, appointment := range seed.Appointments(time.Now().In(location)) {
		if err := appointmentRepo.Create(ctx, appointment); err != nil {
			log.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("Skipping appointment")
			skipped++
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("Appointments seeded")

	return nil
}
