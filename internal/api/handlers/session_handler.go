package handlers

import (
	"net/http"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// Navigator builds the role-specific menu
type Navigator interface {
	Links(session entities.Session) []entities.NavLink
}

// SessionHandler reports the caller's session and menu
type SessionHandler struct {
	navigator Navigator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(navigator Navigator) *SessionHandler {
	return &SessionHandler{navigator: navigator}
}

// GetSession handles GET /api/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := entities.SessionFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"session":       session,
		"authenticated": session.IsAuthenticated(),
	})
}

// GetNavigation handles GET /api/navigation
func (h *SessionHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	session := entities.SessionFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"role":  session.Role,
		"links": h.navigator.Links(session),
	})
}
