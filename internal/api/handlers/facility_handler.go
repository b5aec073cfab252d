package handlers

import (
	"context"
	"net/http"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// FacilityService defines the facility operations exposed over HTTP
type FacilityService interface {
	SearchHospitals(ctx context.Context, query string) (*entities.FacilitySearchResult, error)
	SearchPharmacies(ctx context.Context, query string) (*entities.FacilitySearchResult, error)
	GetFacility(ctx context.Context, id string) (*entities.FacilityView, error)
	OpenStatus(ctx context.Context, id string) (*entities.OpenStatus, error)
	CreateFacility(ctx context.Context, facility *entities.Facility) (*entities.Facility, error)
	NearestHospitals(ctx context.Context, lat, lon float64, limit int) ([]entities.NearbyHospital, error)
}

// FacilityHandler handles hospital and pharmacy requests
type FacilityHandler struct {
	service FacilityService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(service FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// SearchHospitals handles GET /api/hospitals/search?q=
func (h *FacilityHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SearchHospitals(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// SearchPharmacies handles GET /api/pharmacies/search?q=
func (h *FacilityHandler) SearchPharmacies(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SearchPharmacies(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.service.GetFacility(r.Context(), facilityID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, facility)
}

// GetOpenStatus handles GET /api/facilities/{id}/open-status
func (h *FacilityHandler) GetOpenStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.OpenStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// CreateFacility handles POST /api/facilities
func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var facility entities.Facility
	if !decodeJSON(w, r, &facility) {
		return
	}

	created, err := h.service.CreateFacility(r.Context(), &facility)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}
