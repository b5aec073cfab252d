package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mediqueue/backend/internal/adapters/cache"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	redisclient "github.com/mediqueue/backend/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (providers.CacheProvider, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisAdapter(redisclient.NewClientFromRedis(client)), server
}

// countingHandler answers with a fixed body and counts how often it ran
func countingHandler(status int, body string) (http.Handler, *int32) {
	var calls int32
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}), &calls
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	provider, server := newRedisCache(t)
	next, calls := countingHandler(http.StatusOK, `{"results":[]}`)
	h := NewCacheMiddleware(provider, nil).Middleware(next)

	first := serve(h, http.MethodGet, "/api/hospitals/search?q=anytown")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, `{"results":[]}`, first.Body.String())

	second := serve(h, http.MethodGet, "/api/hospitals/search?q=anytown")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `{"results":[]}`, second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.Regexp(t, `^http:cache:/api/hospitals/search:[0-9a-f]{64}$`, keys[0])
	assert.Equal(t, 300, int(server.TTL(keys[0]).Seconds()))
}

func TestCacheMiddleware_QueryOrderSharesEntry(t *testing.T) {
	provider, _ := newRedisCache(t)
	next, calls := countingHandler(http.StatusOK, `{"ok":true}`)
	h := NewCacheMiddleware(provider, nil).Middleware(next)

	serve(h, http.MethodGet, "/api/hospitals/nearby?lat=1&lon=2")
	serve(h, http.MethodGet, "/api/pharmacies/search?a=1&q=x")
	w := serve(h, http.MethodGet, "/api/pharmacies/search?q=x&a=1")

	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestCacheMiddleware_Bypass(t *testing.T) {
	provider, server := newRedisCache(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "non-GET", method: http.MethodPost, target: "/api/facilities", status: http.StatusCreated},
		{name: "uncached route", method: http.MethodGet, target: "/api/appointments/history", status: http.StatusOK},
		{name: "stream", method: http.MethodGet, target: "/api/stream/facilities", status: http.StatusOK},
		{name: "error response", method: http.MethodGet, target: "/api/facilities/missing", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, calls := countingHandler(tt.status, `{}`)
			h := NewCacheMiddleware(provider, nil).Middleware(next)

			serve(h, tt.method, tt.target)
			w := serve(h, tt.method, tt.target)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEqual(t, "HIT", w.Header().Get("X-Cache"))
			assert.Equal(t, int32(2), atomic.LoadInt32(calls))
		})
	}
	assert.Empty(t, server.Keys())
}

func TestCacheMiddleware_NilProviderPassesThrough(t *testing.T) {
	next, calls := countingHandler(http.StatusOK, `{}`)
	h := NewCacheMiddleware(nil, nil).Middleware(next)

	w := serve(h, http.MethodGet, "/api/beds")

	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCacheMiddleware_LookupFailureServesFresh(t *testing.T) {
	provider, server := newRedisCache(t)
	next, calls := countingHandler(http.StatusOK, `{"wards":[]}`)
	h := NewCacheMiddleware(provider, nil).Middleware(next)

	server.Close()
	w := serve(h, http.MethodGet, "/api/beds")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"wards":[]}`, w.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCacheMiddleware_ExactRouteBeatsPrefix(t *testing.T) {
	m := NewCacheMiddlewareWithRoutes(nil, nil, []CacheRoute{
		{Path: "/api/facilities/", Prefix: true, TTLSeconds: 60},
		{Path: "/api/facilities/featured", TTLSeconds: 900},
	})

	route, ok := m.match("/api/facilities/featured")
	require.True(t, ok)
	assert.Equal(t, 900, route.TTLSeconds)

	route, ok = m.match("/api/facilities/h1/open-status")
	require.True(t, ok)
	assert.Equal(t, "/api/facilities/", route.Path)

	_, ok = m.match("/api/facilities")
	assert.False(t, ok)
}

func TestDefaultInvalidationPatterns_ClearCachedRoutes(t *testing.T) {
	provider, server := newRedisCache(t)
	next, _ := countingHandler(http.StatusOK, `{}`)
	h := NewCacheMiddleware(provider, nil).Middleware(next)

	for _, target := range []string{"/api/beds", "/api/pharmacies/search?q=a", "/api/facilities/p1", "/api/hospitals/search?q=a"} {
		serve(h, http.MethodGet, target)
	}
	require.Len(t, server.Keys(), 4)

	patterns := DefaultInvalidationPatterns()
	for _, pattern := range patterns[entities.FacilityEventTypeOpenStatusChange] {
		require.NoError(t, provider.DeletePattern(context.Background(), pattern))
	}

	remaining := server.Keys()
	require.Len(t, remaining, 2)
	for _, key := range remaining {
		assert.Regexp(t, `^http:cache:/api/(beds|hospitals/search):`, key)
	}

	for _, pattern := range patterns[entities.FacilityEventTypeWardCapacityUpdate] {
		require.NoError(t, provider.DeletePattern(context.Background(), pattern))
	}
	assert.Len(t, server.Keys(), 1)
}

func TestDefaultInvalidationPatterns_AdminWrites(t *testing.T) {
	patterns := DefaultInvalidationPatterns()

	assert.ElementsMatch(t, []string{
		"http:cache:/api/hospitals/search:*",
		"http:cache:/api/pharmacies/search:*",
	}, patterns[entities.FacilityEventTypeFacilityCreated])
	assert.ElementsMatch(t, []string{
		"http:cache:/api/departments/:*",
		"http:cache:/api/booking/options:*",
	}, patterns[entities.FacilityEventTypeDoctorStatusChange])
}

func TestCacheControl(t *testing.T) {
	next, _ := countingHandler(http.StatusOK, `{}`)
	h := CacheControl(DefaultCacheRoutes())(next)

	assert.Equal(t, "public, max-age=30, must-revalidate", serve(h, http.MethodGet, "/api/beds").Header().Get("Cache-Control"))
	assert.Equal(t, "public, max-age=1800, must-revalidate", serve(h, http.MethodGet, "/api/departments/cardiology/doctors").Header().Get("Cache-Control"))
	assert.Equal(t, "private, no-cache, must-revalidate", serve(h, http.MethodGet, "/api/session").Header().Get("Cache-Control"))
	assert.Empty(t, serve(h, http.MethodPost, "/api/beds").Header().Get("Cache-Control"))
}
