package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/domain/repositories"
	"github.com/rs/zerolog/log"
)

// CachedFacilityAdapter wraps a FacilityRepository with read-through caching
type CachedFacilityAdapter struct {
	adapter repositories.FacilityRepository
	cache   providers.CacheProvider
}

// NewCachedFacilityAdapter creates a new cached facility adapter
func NewCachedFacilityAdapter(adapter repositories.FacilityRepository, cache providers.CacheProvider) repositories.FacilityRepository {
	return &CachedFacilityAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	facilityByIDTTL   = 300 // 5 minutes for single facility
	facilitiesListTTL = 180 // 3 minutes for lists
)

const facilitiesListPattern = "facilities:list:*"

func facilityCacheKey(id string) string {
	return fmt.Sprintf("facility:%s", id)
}

func facilitiesListCacheKey(filter repositories.FacilityFilter) string {
	active := "any"
	if filter.IsActive != nil {
		active = fmt.Sprintf("%t", *filter.IsActive)
	}
	return fmt.Sprintf("facilities:list:%s:%s:%d:%d", filter.Kind, active, filter.Limit, filter.Offset)
}

// GetByID retrieves a facility by ID with caching
func (a *CachedFacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	cacheKey := facilityCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facility entities.Facility
		if err := json.Unmarshal(cached, &facility); err == nil {
			return &facility, nil
		}
		log.Warn().Err(err).Str("facility_id", id).Msg("Failed to unmarshal cached facility")
	}

	facility, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(cacheKey, facility, facilityByIDTTL)
	return facility, nil
}

// List retrieves a list of facilities with caching
func (a *CachedFacilityAdapter) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	cacheKey := facilitiesListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var facilities []*entities.Facility
		if err := json.Unmarshal(cached, &facilities); err == nil {
			return facilities, nil
		}
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to unmarshal cached facilities list")
	}

	facilities, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	a.store(cacheKey, facilities, facilitiesListTTL)
	return facilities, nil
}

// Create creates a facility and invalidates list caches
func (a *CachedFacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	if err := a.adapter.Create(ctx, facility); err != nil {
		return err
	}
	a.invalidate(ctx, facility.ID)
	return nil
}

// Update updates a facility and invalidates its cache entries
func (a *CachedFacilityAdapter) Update(ctx context.Context, facility *entities.Facility) error {
	if err := a.adapter.Update(ctx, facility); err != nil {
		return err
	}
	a.invalidate(ctx, facility.ID)
	return nil
}

// store updates the cache asynchronously so the response is not blocked
func (a *CachedFacilityAdapter) store(key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	go func() {
		if err := a.cache.Set(context.Background(), key, data, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache facility data")
		}
	}()
}

func (a *CachedFacilityAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, facilityCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("facility_id", id).Msg("Failed to invalidate facility cache")
	}
	if err := a.cache.DeletePattern(ctx, facilitiesListPattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate facilities list cache")
	}
}
