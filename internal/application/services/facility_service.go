package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/filter"
	"github.com/mediqueue/backend/internal/domain/hours"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// FacilityService handles business logic for hospitals and pharmacies
type FacilityService struct {
	repo       repositories.FacilityRepository
	searchRepo repositories.FacilitySearchRepository
	geo        providers.GeolocationProvider
	eventBus   providers.EventBus
	metrics    *observability.Metrics
	location   *time.Location
	now        func() time.Time
}

// NewFacilityService creates a new facility service. searchRepo may be nil,
// in which case searches run against the repository listing.
func NewFacilityService(
	repo repositories.FacilityRepository,
	searchRepo repositories.FacilitySearchRepository,
	geo providers.GeolocationProvider,
	location *time.Location,
) *FacilityService {
	if location == nil {
		location = time.UTC
	}
	return &FacilityService{
		repo:       repo,
		searchRepo: searchRepo,
		geo:        geo,
		location:   location,
		now:        time.Now,
	}
}

// WithEventBus makes CreateFacility announce new facilities on bus
func (s *FacilityService) WithEventBus(bus providers.EventBus, metrics *observability.Metrics) *FacilityService {
	s.eventBus = bus
	s.metrics = metrics
	return s
}

// SearchHospitals searches hospitals by name, city or zip code
func (s *FacilityService) SearchHospitals(ctx context.Context, query string) (*entities.FacilitySearchResult, error) {
	return s.search(ctx, entities.FacilityKindHospital, query)
}

// SearchPharmacies searches pharmacies by name, city or zip code and reports
// whether each is open now
func (s *FacilityService) SearchPharmacies(ctx context.Context, query string) (*entities.FacilitySearchResult, error) {
	return s.search(ctx, entities.FacilityKindPharmacy, query)
}

func (s *FacilityService) search(ctx context.Context, kind entities.FacilityKind, query string) (*entities.FacilitySearchResult, error) {
	if strings.TrimSpace(query) == "" {
		result := filter.SearchFacilities(nil, query)
		return &result, nil
	}

	if s.searchRepo != nil {
		found, err := s.searchRepo.Search(ctx, repositories.SearchParams{Query: query, Kind: kind})
		if err == nil {
			// Hits are re-checked so every backend honors the substring rule
			result := filter.SearchFacilities(found, query)
			s.decorate(result.Results)
			return &result, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("Search backend failed, falling back to listing")
	}

	active := true
	facilities, err := s.repo.List(ctx, repositories.FacilityFilter{Kind: kind, IsActive: &active})
	if err != nil {
		return nil, err
	}

	result := filter.SearchFacilities(facilities, query)
	s.decorate(result.Results)
	return &result, nil
}

// decorate sets IsOpenNow on pharmacies, evaluated once for the whole result
func (s *FacilityService) decorate(views []*entities.FacilityView) {
	now := s.now().In(s.location)
	for _, view := range views {
		if view.Kind == entities.FacilityKindPharmacy {
			open := hours.IsOpen(view.OperatingHours, now)
			view.IsOpenNow = &open
		}
	}
}

// GetFacility returns a facility with its current open state
func (s *FacilityService) GetFacility(ctx context.Context, id string) (*entities.FacilityView, error) {
	facility, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &entities.FacilityView{Facility: facility}
	s.decorate([]*entities.FacilityView{view})
	return view, nil
}

// OpenStatus evaluates whether a facility is open at this moment
func (s *FacilityService) OpenStatus(ctx context.Context, id string) (*entities.OpenStatus, error) {
	facility, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.location)
	return &entities.OpenStatus{
		FacilityID:     facility.ID,
		OperatingHours: facility.OperatingHours,
		IsOpen:         hours.IsOpen(facility.OperatingHours, now),
		EvaluatedAt:    now,
	}, nil
}

// CreateFacility validates and stores a new facility, then indexes it
func (s *FacilityService) CreateFacility(ctx context.Context, facility *entities.Facility) (*entities.Facility, error) {
	if facility == nil {
		return nil, apperrors.NewValidationError("facility is required")
	}
	facility.Name = strings.TrimSpace(facility.Name)
	if facility.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if !facility.Kind.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("kind must be %q or %q", entities.FacilityKindHospital, entities.FacilityKindPharmacy))
	}
	facility.OperatingHours = strings.TrimSpace(facility.OperatingHours)
	if facility.Kind == entities.FacilityKindPharmacy || facility.OperatingHours != "" {
		if err := hours.Validate(facility.OperatingHours); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	now := s.now().UTC()
	facility.ID = uuid.NewString()
	facility.IsActive = true
	facility.CreatedAt = now
	facility.UpdatedAt = now
	if facility.Services == nil {
		facility.Services = []string{}
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		return nil, err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, facility); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("facility_id", facility.ID).Msg("Failed to index facility")
		}
	}

	publishEvent(ctx, s.eventBus, s.metrics, entities.NewFacilityEvent(facility.ID, entities.FacilityEventTypeFacilityCreated, facility.Location, map[string]interface{}{
		"name": facility.Name,
		"kind": string(facility.Kind),
	}))

	return facility, nil
}

// NearestHospitals returns up to limit active hospitals ordered by distance
func (s *FacilityService) NearestHospitals(ctx context.Context, lat, lon float64, limit int) ([]entities.NearbyHospital, error) {
	active := true
	hospitals, err := s.repo.List(ctx, repositories.FacilityFilter{Kind: entities.FacilityKindHospital, IsActive: &active})
	if err != nil {
		return nil, err
	}

	origin := providers.Coordinates{Latitude: lat, Longitude: lon}
	nearby := make([]entities.NearbyHospital, 0, len(hospitals))
	for _, h := range hospitals {
		distance, err := s.geo.CalculateDistance(ctx, origin, providers.Coordinates{
			Latitude:  h.Location.Latitude,
			Longitude: h.Location.Longitude,
		})
		if err != nil {
			return nil, apperrors.NewInternalError("failed to calculate distance", err)
		}
		nearby = append(nearby, entities.NearbyHospital{
			ID:          h.ID,
			Name:        h.Name,
			PhoneNumber: h.PhoneNumber,
			Address:     h.Address,
			DistanceKm:  distance,
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].DistanceKm < nearby[j].DistanceKm })
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// ListPharmacies returns all active pharmacies, used by the open status monitor
func (s *FacilityService) ListPharmacies(ctx context.Context) ([]*entities.Facility, error) {
	active := true
	return s.repo.List(ctx, repositories.FacilityFilter{Kind: entities.FacilityKindPharmacy, IsActive: &active})
}

// Location returns the time zone used for open state evaluation
func (s *FacilityService) Location() *time.Location {
	return s.location
}
