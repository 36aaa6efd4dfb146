package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/lequoctrung8581/weather-app-group-project-asm3/pkg/errors"
)

// Config drives session token behavior.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// Claims identifies a verified dashboard session.
type Claims struct {
	SessionID string
	ExpiresAt time.Time
}

// Token is returned to the frontend when a session is created.
type Token struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service mints and verifies the anonymous session tokens the dashboard
// routes require.
type Service interface {
	Create() (Token, error)
	Verify(token string) (Claims, error)
}

type service struct {
	cfg Config
	now func() time.Time
}

// NewService wires up the session domain.
func NewService(cfg Config) Service {
	return &service{cfg: cfg, now: time.Now}
}

func (s *service) Create() (Token, error) {
	sessionID := uuid.NewString()
	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Token{}, apperrors.Wrap("session_error", "failed to sign session token", err)
	}
	return Token{Token: signed, SessionID: sessionID, ExpiresAt: expires}, nil
}

func (s *service) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap("invalid_token", "token invalid", nil)
	}
	if claims.Subject == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing session id", nil)
	}
	if claims.ExpiresAt == nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing expiry", nil)
	}
	if claims.ExpiresAt.Time.Before(s.now()) {
		return Claims{}, apperrors.Wrap("invalid_token", "token expired", nil)
	}
	return Claims{SessionID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}
