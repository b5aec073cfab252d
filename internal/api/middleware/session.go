package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/infrastructure/observability"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// TokenParser turns a bearer token into a session
type TokenParser interface {
	ParseToken(token string) (entities.Session, error)
}

// SessionMiddleware attaches the caller's session to the request context.
// Requests without an Authorization header run as anonymous; a header that
// does not carry a valid bearer token is rejected with 401.
func SessionMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r.WithContext(entities.WithSession(r.Context(), entities.AnonymousSession())))
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeJSONError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			session, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Rejected session token")
				message := "invalid session token"
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUnauthorized {
					message = appErr.Message
				}
				writeJSONError(w, http.StatusUnauthorized, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(entities.WithSession(r.Context(), session)))
		})
	}
}

// RequireRole only lets sessions with one of roles through: anonymous callers
// get 401 and signed-in callers with another role get 403.
func RequireRole(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := entities.SessionFromContext(r.Context())
			if !session.IsAuthenticated() {
				writeJSONError(w, http.StatusUnauthorized, "sign in required")
				return
			}
			if !session.HasRole(roles...) {
				writeJSONError(w, http.StatusForbidden, "your role cannot access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
