package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
)

const cacheKeyPrefix = "http:cache:"

// CacheRoute configures response caching for one route. Prefix routes match
// every path that starts with Path.
type CacheRoute struct {
	Path       string
	Prefix     bool
	TTLSeconds int
}

// DefaultCacheRoutes are the public catalog routes whose GET responses are cached
func DefaultCacheRoutes() []CacheRoute {
	return []CacheRoute{
		{Path: "/api/hospitals/search", TTLSeconds: 300},
		{Path: "/api/pharmacies/search", TTLSeconds: 60},
		{Path: "/api/facilities/", Prefix: true, TTLSeconds: 60},
		{Path: "/api/booking/options", TTLSeconds: 1800},
		{Path: "/api/departments/", Prefix: true, TTLSeconds: 1800},
		{Path: "/api/beds", TTLSeconds: 30},
	}
}

// CacheKeyPattern returns the glob matching every cached response of route
func CacheKeyPattern(route string) string {
	return cacheKeyPrefix + route + ":*"
}

// DefaultInvalidationPatterns maps facility events to the cached routes they make stale
func DefaultInvalidationPatterns() map[entities.FacilityEventType][]string {
	return map[entities.FacilityEventType][]string{
		entities.FacilityEventTypeWardCapacityUpdate: {CacheKeyPattern("/api/beds")},
		entities.FacilityEventTypeOpenStatusChange: {
			CacheKeyPattern("/api/pharmacies/search"),
			CacheKeyPattern("/api/facilities/"),
		},
		entities.FacilityEventTypeFacilityCreated: {
			CacheKeyPattern("/api/hospitals/search"),
			CacheKeyPattern("/api/pharmacies/search"),
		},
		entities.FacilityEventTypeDoctorStatusChange: {
			CacheKeyPattern("/api/departments/"),
			CacheKeyPattern("/api/booking/options"),
		},
	}
}

// CacheMiddleware provides HTTP response caching
type CacheMiddleware struct {
	cache   providers.CacheProvider
	routes  []CacheRoute
	metrics *observability.Metrics
}

// NewCacheMiddleware creates a cache middleware for the default routes
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics) *CacheMiddleware {
	return NewCacheMiddlewareWithRoutes(cache, metrics, DefaultCacheRoutes())
}

// NewCacheMiddlewareWithRoutes creates a cache middleware for routes. Exact
// routes win over prefix routes; among prefixes the first match wins.
func NewCacheMiddlewareWithRoutes(cache providers.CacheProvider, metrics *observability.Metrics, routes []CacheRoute) *CacheMiddleware {
	return &CacheMiddleware{cache: cache, routes: routes, metrics: metrics}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		route, ok := m.match(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		key := cacheKey(route.Path, r)

		cached, err := m.cache.Get(ctx, key)
		if err == nil {
			observability.RecordCacheHit(ctx, m.metrics, route.Path)
			logger.Debug().Str("key", key).Msg("Cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
		if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		}

		observability.RecordCacheMiss(ctx, m.metrics, route.Path)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode != http.StatusOK || recorder.body.Len() == 0 {
			return
		}
		if err := m.cache.Set(ctx, key, recorder.body.Bytes(), route.TTLSeconds); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to cache response")
			return
		}
		logger.Debug().Str("key", key).Int("ttl_seconds", route.TTLSeconds).Msg("Cached response")
	})
}

func (m *CacheMiddleware) match(path string) (CacheRoute, bool) {
	for _, route := range m.routes {
		if !route.Prefix && route.Path == path {
			return route, true
		}
	}
	for _, route := range m.routes {
		if route.Prefix && strings.HasPrefix(path, route.Path) {
			return route, true
		}
	}
	return CacheRoute{}, false
}

// cacheKey namespaces the hashed request under its route so that
// CacheKeyPattern can invalidate a whole route at once
func cacheKey(route string, r *http.Request) string {
	raw := fmt.Sprintf("%s:%s", r.Method, r.URL.Path)
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.Query().Encode()
	}
	hash := sha256.Sum256([]byte(raw))
	return cacheKeyPrefix + route + ":" + hex.EncodeToString(hash[:])
}

// responseRecorder tees the response so it can be stored after it is sent
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
