package entities

import (
	"context"
	"fmt"
	"strings"
)

// Role is the kind of user a session belongs to
type Role string

const (
	RolePatient   Role = "patient"
	RoleDoctor    Role = "doctor"
	RoleAdmin     Role = "admin"
	RoleAnonymous Role = "anonymous"
)

// ParseRole accepts only the known roles, case-insensitively
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAnonymous:
		return RoleAnonymous, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// Session identifies who is making a request
type Session struct {
	UserID string `json:"user_id,omitempty"`
	Role   Role   `json:"role"`
	Name   string `json:"name,omitempty"`
}

// AnonymousSession is the session of a request without credentials
func AnonymousSession() Session {
	return Session{Role: RoleAnonymous}
}

// IsAuthenticated reports whether the session belongs to a signed-in user
func (s Session) IsAuthenticated() bool {
	return s.Role != RoleAnonymous && s.Role != ""
}

// HasRole reports whether the session role is one of roles
func (s Session) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the request session, or an anonymous one
func SessionFromContext(ctx context.Context) Session {
	if session, ok := ctx.Value(sessionKey{}).(Session); ok {
		return session
	}
	return AnonymousSession()
}

// NavLink is one entry of the role-specific navigation menu
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}
