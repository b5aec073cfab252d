package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

const (
	defaultNearbyLimit = 5
	maxNearbyLimit     = 20
)

// GeolocationHandler handles address lookup and nearby hospital requests
type GeolocationHandler struct {
	provider   providers.GeolocationProvider
	facilities FacilityService
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(provider providers.GeolocationProvider, facilities FacilityService) *GeolocationHandler {
	return &GeolocationHandler{provider: provider, facilities: facilities}
}

// Geocode handles GET /api/geocode?address=
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	coords, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("address", address).Msg("Geocode failed")
		respondWithError(w, http.StatusBadGateway, "failed to geocode address")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address": address,
		"lat":     coords.Latitude,
		"lon":     coords.Longitude,
	})
}

// NearbyHospitals handles GET /api/hospitals/nearby?lat=&lon= or ?address=
func (h *GeolocationHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	lat, hasLat, latErr := parseFloatParam(r, "lat")
	lon, hasLon, lonErr := parseFloatParam(r, "lon")
	if latErr != nil || lonErr != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat or lon parameter")
		return
	}

	if !hasLat || !hasLon {
		address := strings.TrimSpace(r.URL.Query().Get("address"))
		if address == "" {
			respondWithError(w, http.StatusBadRequest, "lat and lon or address parameter is required")
			return
		}
		coords, err := h.provider.Geocode(r.Context(), address)
		if err != nil {
			observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("address", address).Msg("Geocode failed")
			respondWithError(w, http.StatusBadGateway, "failed to geocode address")
			return
		}
		lat, lon = coords.Latitude, coords.Longitude
	}

	limit := defaultNearbyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = min(parsed, maxNearbyLimit)
	}

	hospitals, err := h.facilities.NearestHospitals(r.Context(), lat, lon, limit)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"lat":       lat,
		"lon":       lon,
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}
