package services

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

// publishEvent sends event on the facility updates channel. A nil bus is a
// no-op and publish failures are only logged.
func publishEvent(ctx context.Context, bus providers.EventBus, metrics *observability.Metrics, event *entities.FacilityEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, providers.EventChannelFacilityUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("facility_id", event.FacilityID).
			Str("event_type", string(event.EventType)).
			Msg("Failed to publish facility event")
		return
	}
	observability.RecordEventPublished(ctx, metrics, string(event.EventType))
}
