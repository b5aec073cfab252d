package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// BedService manages ward occupancy
type BedService struct {
	repo     repositories.WardRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewBedService creates a new bed service. eventBus and metrics may be nil.
func NewBedService(repo repositories.WardRepository, eventBus providers.EventBus, metrics *observability.Metrics) *BedService {
	return &BedService{repo: repo, eventBus: eventBus, metrics: metrics, now: time.Now}
}

// List returns all wards with their occupancy
func (s *BedService) List(ctx context.Context) ([]*entities.Ward, error) {
	return s.repo.List(ctx)
}

// UpdateOccupancy sets a ward's occupied and total bed counts and announces
// the change on the event bus
func (s *BedService) UpdateOccupancy(ctx context.Context, id string, occupied, total int) (*entities.Ward, error) {
	if total < 0 {
		return nil, apperrors.NewValidationError("total must not be negative")
	}
	if occupied < 0 || occupied > total {
		return nil, apperrors.NewValidationError(fmt.Sprintf("occupied must be between 0 and %d", total))
	}

	ward, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if ward.Occupied != occupied {
		changed["occupied"] = occupied
	}
	if ward.Total != total {
		changed["total"] = total
	}

	ward.Occupied = occupied
	ward.Total = total
	ward.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, ward); err != nil {
		return nil, err
	}

	if len(changed) > 0 && s.eventBus != nil {
		changed["ward_id"] = ward.ID
		changed["ward_name"] = ward.Name
		changed["available"] = ward.Available()
		changed["occupancy_percent"] = ward.OccupancyPercent()

		publishEvent(ctx, s.eventBus, s.metrics,
			entities.NewFacilityEvent(ward.ID, entities.FacilityEventTypeWardCapacityUpdate, entities.Location{}, changed))
	}

	return ward, nil
}
