package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mediqueue/backend/internal/domain/entities"
	apperrors "github.com/mediqueue/backend/pkg/errors"
)

// sessionClaims are the JWT claims carried by a session token
type sessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies HS256 session tokens
type SessionService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(secret, issuer string, ttl time.Duration) (*SessionService, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// IssueToken signs a token for session. Anonymous sessions cannot be issued.
func (s *SessionService) IssueToken(session entities.Session) (string, time.Time, error) {
	if !session.IsAuthenticated() {
		return "", time.Time{}, apperrors.NewValidationError("cannot issue a token for an anonymous session")
	}
	if strings.TrimSpace(session.UserID) == "" {
		return "", time.Time{}, apperrors.NewValidationError("user id is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Role: string(session.Role),
		Name: session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError("failed to sign session token", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies a token and returns the session it carries
func (s *SessionService) ParseToken(tokenString string) (entities.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return entities.AnonymousSession(), apperrors.NewUnauthorizedError("invalid session token")
	}

	role, err := entities.ParseRole(claims.Role)
	if err != nil || role == entities.RoleAnonymous || claims.Subject == "" {
		return entities.AnonymousSession(), apperrors.NewUnauthorizedError(fmt.Sprintf("invalid session role %q", claims.Role))
	}

	return entities.Session{UserID: claims.Subject, Role: role, Name: claims.Name}, nil
}
