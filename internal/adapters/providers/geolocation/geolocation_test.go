package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, assert.AnError
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func TestHaversine(t *testing.T) {
	anytown := providers.Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	assert.InDelta(t, 0, Haversine(anytown, anytown), 1e-9)

	london := providers.Coordinates{Latitude: 51.5074, Longitude: -0.1278}
	assert.InDelta(t, 5570, Haversine(anytown, london), 15)
}

func TestMockProvider_ReverseGeocodePicksClosestTown(t *testing.T) {
	provider := NewMockGeolocationProvider()

	addr, err := provider.ReverseGeocode(context.Background(), 40.801, -73.95)
	require.NoError(t, err)
	assert.Equal(t, "Suburbia", addr.City)
	assert.Equal(t, "67890", addr.ZipCode)
}

func TestMockProvider_Geocode(t *testing.T) {
	provider := NewMockGeolocationProvider()

	coords, err := provider.Geocode(context.Background(), "300 Cure Blvd, Metropolis")
	require.NoError(t, err)
	assert.InDelta(t, 40.7506, coords.Latitude, 1e-4)

	_, err = provider.Geocode(context.Background(), "Atlantis")
	assert.Error(t, err)
}

func TestGoogleProvider_ReverseGeocodeUsesCache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "40.712800,-74.006000", r.URL.Query().Get("latlng"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "123 Main St, Anytown, NY 12345, USA",
				"address_components": [
					{"long_name": "123", "types": ["street_number"]},
					{"long_name": "Main St", "types": ["route"]},
					{"long_name": "Anytown", "types": ["locality"]},
					{"long_name": "12345", "types": ["postal_code"]}
				],
				"geometry": {"location": {"lat": 40.7128, "lng": -74.006}}
			}]
		}`))
	}))
	defer server.Close()

	provider := NewGoogleGeolocationProviderWithOptions("test-key", newMemoryCache(), server.URL, server.Client())

	for i := 0; i < 2; i++ {
		addr, err := provider.ReverseGeocode(context.Background(), 40.7128, -74.006)
		require.NoError(t, err)
		assert.Equal(t, "123 Main St", addr.Street)
		assert.Equal(t, "Anytown", addr.City)
		assert.Equal(t, "12345", addr.ZipCode)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGoogleProvider_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	}))
	defer server.Close()

	provider := NewGoogleGeolocationProviderWithOptions("test-key", nil, server.URL, server.Client())
	_, err := provider.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")

	noKey := NewGoogleGeolocationProviderWithOptions("", nil, server.URL, server.Client())
	_, err = noKey.Geocode(context.Background(), "Anytown")
	assert.Error(t, err)
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}
