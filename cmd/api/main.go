package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediqueue/backend/internal/adapters/cache"
	"github.com/mediqueue/backend/internal/adapters/database"
	"github.com/mediqueue/backend/internal/adapters/events"
	"github.com/mediqueue/backend/internal/adapters/memory"
	"github.com/mediqueue/backend/internal/adapters/providers/geolocation"
	"github.com/mediqueue/backend/internal/adapters/search"
	"github.com/mediqueue/backend/internal/api/handlers"
	"github.com/mediqueue/backend/internal/api/middleware"
	"github.com/mediqueue/backend/internal/api/routes"
	"github.com/mediqueue/backend/internal/application/services"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/clients/openai"
	"github.com/mediqueue/backend/internal/infrastructure/clients/postgres"
	"github.com/mediqueue/backend/internal/infrastructure/clients/redis"
	"github.com/mediqueue/backend/internal/infrastructure/clients/typesense"
	"github.com/mediqueue/backend/internal/infrastructure/notifications"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	"github.com/mediqueue/backend/internal/seed"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("mediqueue-api", "development")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	location, err := cfg.Facility.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid facility time zone")
	}

	// Redis backs the response cache, the facility read cache and the event bus.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable; continuing without cache and with the in-process event bus")
		} else {
			defer redisClient.Close()
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	} else {
		eventBus = events.NewMemoryEventBus()
	}

	// Storage
	var (
		facilityRepo    repositories.FacilityRepository
		appointmentRepo repositories.AppointmentRepository
		wardRepo        repositories.WardRepository
	)
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		pgClient.SetMetrics(metrics)
		log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Database).Msg("PostgreSQL client initialized")

		facilityRepo = database.NewFacilityAdapter(pgClient)
		appointmentRepo = database.NewAppointmentAdapter(pgClient)
		wardRepo = database.NewWardAdapter(pgClient)
	default:
		facilityRepo = memory.NewFacilityRepository(seed.Facilities())
		appointmentRepo = memory.NewAppointmentRepository(seed.Appointments(time.Now().In(location)))
		wardRepo = memory.NewWardRepository(seed.Wards())
		log.Info().Msg("Using in-memory storage seeded with demo data")
	}

	if cacheProvider != nil {
		facilityRepo = database.NewCachedFacilityAdapter(facilityRepo, cacheProvider)
		log.Info().Msg("Facility repository wrapped with caching layer")
	}

	doctorRepo := memory.NewDoctorRepository(seed.Doctors())
	departmentRepo := memory.NewDepartmentRepository(seed.Departments())

	var searchRepo repositories.FacilitySearchRepository
	if cfg.Typesense.Enabled {
		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable; searches fall back to the repository")
		} else {
			if err := tsClient.InitSchema(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to init Typesense schema")
			}
			searchRepo = search.NewTypesenseAdapter(tsClient)
			log.Info().Str("url", cfg.Typesense.URL).Msg("Typesense client initialized")
		}
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	var (
		symptomChecker providers.SymptomChecker
		slotAdvisor    providers.SlotAdvisor
	)
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; symptom checker and smart slots disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize OpenAI client")
		} else {
			symptomChecker = openaiClient
			slotAdvisor = openaiClient
		}
	}

	var smsSender providers.SMSSender
	if cfg.Twilio.Enabled() {
		sender, err := notifications.NewTwilioSMSSender(&cfg.Twilio)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Twilio sender")
		} else {
			smsSender = sender
			log.Info().Msg("SMS booking confirmations enabled")
		}
	}

	sessionService, err := services.NewSessionService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session service")
	}
	if cfg.IsDevelopment() && os.Getenv("JWT_SECRET") == "" {
		log.Warn().Msg("JWT_SECRET is not set; using the development secret")
	}

	// Services
	facilityService := services.NewFacilityService(facilityRepo, searchRepo, geolocationProvider, location).
		WithEventBus(eventBus, metrics)
	appointmentService := services.NewAppointmentService(
		appointmentRepo,
		doctorRepo,
		departmentRepo,
		services.NewNotificationService(smsSender),
		seed.BookingDepartmentIDs,
		seed.TimeSlots,
		location,
	)
	bedService := services.NewBedService(wardRepo, eventBus, metrics)
	admissionService := services.NewAdmissionService(memory.NewAdmissionRepository(seed.Admissions()))
	ambulanceService := services.NewAmbulanceService(memory.NewAmbulanceRepository(seed.Ambulances()))
	staffService := services.NewStaffService(doctorRepo, departmentRepo).WithEventBus(eventBus, metrics)
	queueService := services.NewQueueService(memory.NewOPDQueueRepository(seed.OPDQueues()))
	emergencyService := services.NewEmergencyService(geolocationProvider, facilityService)

	monitor := services.NewOpenStatusMonitor(facilityService, eventBus, metrics, cfg.Scheduler.OpenStatusSpec)
	if err := monitor.Start(); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Scheduler.OpenStatusSpec).Msg("Failed to start open status monitor")
	}
	log.Info().Str("spec", cfg.Scheduler.OpenStatusSpec).Msg("Open status monitor started")

	var cacheInvalidation *services.CacheInvalidationService
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheInvalidation = services.NewCacheInvalidationService(cacheProvider, eventBus, middleware.DefaultInvalidationPatterns())
		if err := cacheInvalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
			cacheInvalidation = nil
		}
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Response cache enabled")
	}

	router := routes.NewRouter(
		routes.Handlers{
			Facility:    handlers.NewFacilityHandler(facilityService),
			Geolocation: handlers.NewGeolocationHandler(geolocationProvider, facilityService),
			Appointment: handlers.NewAppointmentHandler(appointmentService),
			Hospital:    handlers.NewHospitalHandler(bedService, admissionService, ambulanceService, staffService, queueService),
			AI:          handlers.NewAIHandler(services.NewSymptomService(symptomChecker), services.NewSlotAllocationService(slotAdvisor)),
			Emergency:   handlers.NewEmergencyHandler(emergencyService),
			Session:     handlers.NewSessionHandler(services.NewNavigationService()),
			SSE:         handlers.NewSSEHandler(eventBus),
		},
		sessionService,
		cacheMiddleware,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		// Streams stay open, so there is no write deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		// Cancelling ctx ends open event streams during shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("storage", cfg.Storage.Backend).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	monitor.Stop()
	if cacheInvalidation != nil {
		cacheInvalidation.Stop()
	}
	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}

	log.Info().Msg("Server stopped")
}
