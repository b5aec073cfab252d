package repositories

import (
	"context"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// WardRepository defines the interface for ward occupancy data
type WardRepository interface {
	List(ctx context.Context) ([]*entities.Ward, error)
	GetByID(ctx context.Context, id string) (*entities.Ward, error)
	Update(ctx context.Context, ward *entities.Ward) error
}
