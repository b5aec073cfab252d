package providers

import (
	"context"
	"errors"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// ErrAIUnauthorized is returned when the AI service rejects our credentials
var ErrAIUnauthorized = errors.New("ai provider unauthorized")

// SymptomChecker produces non-diagnostic guidance from a symptom description
type SymptomChecker interface {
	CheckSymptoms(ctx context.Context, input entities.SymptomCheckInput) (*entities.SymptomCheckResult, error)
}

// SlotAdvisor suggests OPD slot allocations from load patterns
type SlotAdvisor interface {
	SuggestSlots(ctx context.Context, input entities.SlotAllocationInput) (*entities.SlotAllocationResult, error)
}
