package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/hours"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const openStatusTickTimeout = 30 * time.Second

// OpenStatusMonitor periodically re-evaluates pharmacy operating hours and
// publishes an event whenever a pharmacy opens or closes
type OpenStatusMonitor struct {
	facilities *FacilityService
	eventBus   providers.EventBus
	metrics    *observability.Metrics
	spec       string
	now        func() time.Time

	mu       sync.Mutex
	lastOpen map[string]bool
	cron     *cron.Cron
}

// NewOpenStatusMonitor creates a monitor that runs on the cron spec
func NewOpenStatusMonitor(facilities *FacilityService, eventBus providers.EventBus, metrics *observability.Metrics, spec string) *OpenStatusMonitor {
	return &OpenStatusMonitor{
		facilities: facilities,
		eventBus:   eventBus,
		metrics:    metrics,
		spec:       spec,
		now:        time.Now,
		lastOpen:   make(map[string]bool),
	}
}

// Start schedules the monitor and runs the first evaluation immediately
func (m *OpenStatusMonitor) Start() error {
	c := cron.New(cron.WithLocation(m.facilities.Location()))
	if _, err := c.AddFunc(m.spec, m.runTick); err != nil {
		return fmt.Errorf("invalid open status schedule %q: %w", m.spec, err)
	}

	m.mu.Lock()
	m.cron = c
	m.mu.Unlock()

	m.runTick()
	c.Start()
	log.Info().Str("schedule", m.spec).Msg("Open status monitor started")
	return nil
}

// Stop halts the schedule and waits for a running evaluation to finish
func (m *OpenStatusMonitor) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	log.Info().Msg("Open status monitor stopped")
}

func (m *OpenStatusMonitor) runTick() {
	ctx, cancel := context.WithTimeout(context.Background(), openStatusTickTimeout)
	defer cancel()

	if _, err := m.Tick(ctx); err != nil {
		log.Warn().Err(err).Msg("Open status evaluation failed")
	}
}

// Tick evaluates every pharmacy once and returns the events it published.
// The first evaluation of a pharmacy only records its state.
func (m *OpenStatusMonitor) Tick(ctx context.Context) ([]*entities.FacilityEvent, error) {
	pharmacies, err := m.facilities.ListPharmacies(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now().In(m.facilities.Location())

	m.mu.Lock()
	defer m.mu.Unlock()

	var published []*entities.FacilityEvent
	for _, pharmacy := range pharmacies {
		open := hours.IsOpen(pharmacy.OperatingHours, now)
		previous, seen := m.lastOpen[pharmacy.ID]
		m.lastOpen[pharmacy.ID] = open
		if !seen || previous == open {
			continue
		}

		event := entities.NewFacilityEvent(pharmacy.ID, entities.FacilityEventTypeOpenStatusChange, pharmacy.Location, map[string]interface{}{
			"is_open":         open,
			"operating_hours": pharmacy.OperatingHours,
			"name":            pharmacy.Name,
		})
		if err := m.eventBus.Publish(ctx, providers.EventChannelFacilityUpdates, event); err != nil {
			log.Warn().Err(err).Str("facility_id", pharmacy.ID).Msg("Failed to publish open status change")
			continue
		}
		observability.RecordEventPublished(ctx, m.metrics, string(event.EventType))
		published = append(published, event)
	}
	return published, nil
}
