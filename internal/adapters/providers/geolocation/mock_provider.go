package geolocation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mediqueue/backend/internal/domain/providers"
)

const earthRadiusKm = 6371.0

type knownTown struct {
	name    string
	state   string
	zipCode string
	coords  providers.Coordinates
}

// Towns served by the seeded hospitals and pharmacies
var knownTowns = []knownTown{
	{name: "Anytown", state: "NY", zipCode: "12345", coords: providers.Coordinates{Latitude: 40.7128, Longitude: -74.0060}},
	{name: "Suburbia", state: "NY", zipCode: "67890", coords: providers.Coordinates{Latitude: 40.8007, Longitude: -73.9497}},
	{name: "Metropolis", state: "NY", zipCode: "10001", coords: providers.Coordinates{Latitude: 40.7506, Longitude: -73.9971}},
	{name: "Green Valley", state: "NJ", zipCode: "54321", coords: providers.Coordinates{Latitude: 40.6437, Longitude: -74.1018}},
}

// MockGeolocationProvider resolves addresses against a fixed list of towns
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	lower := strings.ToLower(address)
	for _, town := range knownTowns {
		if strings.Contains(lower, strings.ToLower(town.name)) {
			coords := town.coords
			return &coords, nil
		}
	}
	return nil, fmt.Errorf("no results for address %q", address)
}

// ReverseGeocode names the closest known town (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	point := providers.Coordinates{Latitude: lat, Longitude: lon}

	closest := knownTowns[0]
	best := math.MaxFloat64
	for _, town := range knownTowns {
		if d := Haversine(point, town.coords); d < best {
			best = d
			closest = town
		}
	}

	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("Near %s, %s %s (%.5f, %.5f)", closest.name, closest.state, closest.zipCode, lat, lon),
		City:             closest.name,
		State:            closest.state,
		ZipCode:          closest.zipCode,
		Country:          "USA",
		Coordinates:      point,
	}, nil
}

// CalculateDistance calculates the distance between two points using Haversine formula
func (m *MockGeolocationProvider) CalculateDistance(ctx context.Context, from, to providers.Coordinates) (float64, error) {
	return Haversine(from, to), nil
}

// Haversine returns the great-circle distance between two points in kilometers
func Haversine(from, to providers.Coordinates) float64 {
	lat1Rad := toRadians(from.Latitude)
	lat2Rad := toRadians(to.Latitude)
	deltaLat := toRadians(to.Latitude - from.Latitude)
	deltaLon := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
