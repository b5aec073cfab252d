package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/repositories"
)

// FacilityRepository implements repositories.FacilityRepository in memory
type FacilityRepository struct {
	store *store[entities.Facility]
}

// NewFacilityRepository creates a facility repository holding seed
func NewFacilityRepository(seed []*entities.Facility) *FacilityRepository {
	return &FacilityRepository{
		store: newStore("facility", func(f *entities.Facility) string { return f.ID }, cloneFacility, seed),
	}
}

func cloneFacility(f *entities.Facility) *entities.Facility {
	c := *f
	c.Services = slices.Clone(f.Services)
	return &c
}

// Create creates a new facility
func (r *FacilityRepository) Create(ctx context.Context, facility *entities.Facility) error {
	return r.store.insert(facility)
}

// GetByID retrieves a facility by ID
func (r *FacilityRepository) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	return r.store.get(id)
}

// Update updates a facility
func (r *FacilityRepository) Update(ctx context.Context, facility *entities.Facility) error {
	return r.store.update(facility)
}

// List retrieves facilities with filters, ordered by ID
func (r *FacilityRepository) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	facilities := r.store.list(func(f *entities.Facility) bool {
		if filter.Kind != "" && f.Kind != filter.Kind {
			return false
		}
		if filter.IsActive != nil && f.IsActive != *filter.IsActive {
			return false
		}
		return true
	})

	sort.SliceStable(facilities, func(i, j int) bool { return facilities[i].ID < facilities[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(facilities) {
			return []*entities.Facility{}, nil
		}
		facilities = facilities[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(facilities) {
		facilities = facilities[:filter.Limit]
	}
	return facilities, nil
}
