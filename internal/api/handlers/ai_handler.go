package handlers

import (
	"context"
	"net/http"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// SymptomService runs the symptom check flow
type SymptomService interface {
	Check(ctx context.Context, input entities.SymptomCheckInput) (*entities.SymptomCheckResult, error)
}

// SlotAllocationService runs the smart slot allocation flow
type SlotAllocationService interface {
	Suggest(ctx context.Context, input entities.SlotAllocationInput) (*entities.SlotAllocationResult, error)
}

// AIHandler handles the assistant flows
type AIHandler struct {
	symptoms SymptomService
	slots    SlotAllocationService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(symptoms SymptomService, slots SlotAllocationService) *AIHandler {
	return &AIHandler{symptoms: symptoms, slots: slots}
}

// CheckSymptoms handles POST /api/symptom-check
func (h *AIHandler) CheckSymptoms(w http.ResponseWriter, r *http.Request) {
	var input entities.SymptomCheckInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.symptoms.Check(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// SuggestSlots handles POST /api/admin/slot-suggestions
func (h *AIHandler) SuggestSlots(w http.ResponseWriter, r *http.Request) {
	var input entities.SlotAllocationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.slots.Suggest(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
