package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	next, calls := countingHandler(http.StatusOK, `{}`)

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beds", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		w := httptest.NewRecorder()
		CORSMiddleware([]string{"*"})(next).ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beds", nil)
		req.Header.Set("Origin", "https://opd.example")
		w := httptest.NewRecorder()
		CORSMiddleware([]string{"https://opd.example"})(next).ServeHTTP(w, req)

		assert.Equal(t, "https://opd.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("unlisted origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/beds", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		CORSMiddleware([]string{"https://opd.example"})(next).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		before := *calls
		w := httptest.NewRecorder()
		CORSMiddleware([]string{"*"})(next).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/appointments", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before, *calls)
	})
}

func TestLoggingMiddleware_PreservesStatusAndFlush(t *testing.T) {
	h := LoggingMiddleware(ObservabilityMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, canFlush := w.(http.Flusher)
		assert.True(t, canFlush, "streaming handlers need a flusher")
		w.WriteHeader(http.StatusTeapot)
	})))

	w := serve(h, http.MethodGet, "/api/stream/facilities")

	assert.Equal(t, http.StatusTeapot, w.Code)
}
