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

	"github.com/mediqueue/backend/internal/adapters/events"
	"github.com/mediqueue/backend/internal/api/handlers"
	"github.com/mediqueue/backend/internal/api/middleware"
	"github.com/mediqueue/backend/internal/infrastructure/clients/redis"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

// A dedicated stream server lets event fan-out scale apart from the API.
// It only works across processes with Redis Pub/Sub, so Redis is required.
func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger("mediqueue-sse", "development")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("mediqueue-sse", cfg.Server.Env)

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.RedisAddr()).Msg("Stream server needs Redis")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	sseHandler := handlers.NewSSEHandler(eventBus)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /api/stream/facilities", sseHandler.StreamFacilityUpdates)
	mux.HandleFunc("GET /api/stream/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"connected_clients":%d}`, sseHandler.GetClientCount())
	})

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(cfg.Server.AllowedOrigins)(handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Stream server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Stream server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Int("clients", sseHandler.GetClientCount()).Msg("Stream server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during stream server shutdown")
	}

	if err := eventBus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event bus")
	}
	log.Info().Msg("Stream server stopped")
}
