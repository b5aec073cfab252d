package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

const (
	locationAcquisitionTimeout = 5 * time.Second
	nearestHospitalCount       = 3
)

// EmergencyService raises SOS alerts
type EmergencyService struct {
	geo        providers.GeolocationProvider
	facilities *FacilityService
	now        func() time.Time
}

// NewEmergencyService creates a new emergency service
func NewEmergencyService(geo providers.GeolocationProvider, facilities *FacilityService) *EmergencyService {
	return &EmergencyService{geo: geo, facilities: facilities, now: time.Now}
}

// RaiseAlert records an SOS at the given coordinates and returns the nearest
// hospitals. Address lookup is attempted once within a fixed timeout; a
// failed lookup leaves the address blank.
func (s *EmergencyService) RaiseAlert(ctx context.Context, session entities.Session, lat, lon float64) (*entities.EmergencyAlert, error) {
	if lat < -90 || lat > 90 {
		return nil, apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, apperrors.NewValidationError("longitude must be between -180 and 180")
	}

	logger := observability.LoggerFromContext(ctx)

	alert := &entities.EmergencyAlert{
		ID:        uuid.NewString(),
		UserID:    session.UserID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: s.now().UTC(),
	}

	if s.geo != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, locationAcquisitionTimeout)
		address, err := s.geo.ReverseGeocode(lookupCtx, lat, lon)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("Reverse geocoding failed for SOS")
		} else if address != nil {
			alert.Address = address.FormattedAddress
		}
	}

	nearest, err := s.facilities.NearestHospitals(ctx, lat, lon, nearestHospitalCount)
	if err != nil {
		return nil, err
	}
	alert.NearestHospitals = nearest

	logger.Warn().
		Str("alert_id", alert.ID).
		Str("user_id", alert.UserID).
		Float64("latitude", lat).
		Float64("longitude", lon).
		Str("address", alert.Address).
		Int("hospitals", len(nearest)).
		Msg("Emergency SOS raised")

	return alert, nil
}
