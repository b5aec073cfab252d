package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

// CacheInvalidationService drops cached HTTP responses made stale by
// facility events
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	patterns map[entities.FacilityEventType][]string
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a service that deletes the cache key
// patterns registered for each event type
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus, patterns map[entities.FacilityEventType][]string) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		patterns: patterns,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelFacilityUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to facility updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if !s.started {
		return
	}
	<-s.done
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.FacilityEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event != nil {
				s.handleEvent(event)
			}
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.FacilityEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, pattern := range s.patterns[event.EventType] {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Str("event_id", event.ID).Msg("Failed to invalidate cache")
			continue
		}
		log.Debug().Str("pattern", pattern).Str("event_type", string(event.EventType)).Msg("Invalidated cache")
	}
}
