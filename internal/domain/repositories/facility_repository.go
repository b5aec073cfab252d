package repositories

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// FacilityRepository defines the interface for facility data operations
type FacilityRepository interface {
	// Create creates a new facility
	Create(ctx context.Context, facility *entities.Facility) error

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)

	// Update updates a facility
	Update(ctx context.Context, facility *entities.Facility) error

	// List retrieves facilities with filters, ordered by ID
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)
}

// FacilitySearchRepository defines the interface for facility search operations (e.g. Typesense)
type FacilitySearchRepository interface {
	// Search searches facilities
	Search(ctx context.Context, params SearchParams) ([]*entities.Facility, error)

	// Index indexes a facility
	Index(ctx context.Context, facility *entities.Facility) error

	// Delete removes a facility from index
	Delete(ctx context.Context, id string) error
}

// FacilityFilter defines filters for listing facilities
type FacilityFilter struct {
	Kind     entities.FacilityKind
	IsActive *bool
	Limit    int
	Offset   int
}

// SearchParams defines parameters for facility search
type SearchParams struct {
	Query string
	Kind  entities.FacilityKind
	Limit int
}
