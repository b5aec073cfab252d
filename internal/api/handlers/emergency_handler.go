package handlers

import (
	"context"
	"net/http"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// EmergencyService raises SOS alerts
type EmergencyService interface {
	RaiseAlert(ctx context.Context, session entities.Session, lat, lon float64) (*entities.EmergencyAlert, error)
}

// EmergencyHandler handles SOS requests
type EmergencyHandler struct {
	service EmergencyService
}

// NewEmergencyHandler creates a new emergency handler
func NewEmergencyHandler(service EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{service: service}
}

// RaiseSOS handles POST /api/emergency/sos
func (h *EmergencyHandler) RaiseSOS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Latitude == nil || body.Longitude == nil {
		respondWithError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	alert, err := h.service.RaiseAlert(r.Context(), entities.SessionFromContext(r.Context()), *body.Latitude, *body.Longitude)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, alert)
}
