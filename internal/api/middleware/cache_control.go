package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl advertises the server-side cache TTL of catalog routes to
// browsers and proxies. Every other GET is marked private and uncacheable.
func CacheControl(routes []CacheRoute) func(http.Handler) http.Handler {
	m := &CacheMiddleware{routes: routes}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				if route, ok := m.match(r.URL.Path); ok {
					w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, must-revalidate", route.TTLSeconds))
				} else {
					w.Header().Set("Cache-Control", "private, no-cache, must-revalidate")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
