package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

const maxRequestBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps an application error to its HTTP status.
// Internal failures are logged and reported without detail.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("Upstream failure")
		}
		respondWithError(w, status, appErr.Message)
		return
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dest); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

func parseFloatParam(r *http.Request, name string) (float64, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	return value, true, err
}
