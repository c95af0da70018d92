package token

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
)

// DefaultTTL is the session lifetime. Tokens are minted once at login and
// never refreshed mid-life.
const DefaultTTL = 24 * time.Hour

// insecureFallbackSecret keeps local development working when SESSION_SECRET
// is unset. NewService logs an error when it is used; production must never
// run on this value.
const insecureFallbackSecret = "insecure-dev-session-secret-change-me"

type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service mints and verifies signed session tokens (HS256).
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if secret == "" {
		log.Error("SESSION_SECRET is not configured; falling back to a fixed insecure secret. Set SESSION_SECRET before deploying.")
		secret = insecureFallbackSecret
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Mint signs a session token for id, valid from now for the service TTL.
func (s *Service) Mint(id identity.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  id.Name,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string. It never returns an error:
// malformed, expired, unsigned or foreign-signed tokens all resolve to
// ok=false so callers degrade to anonymous instead of failing open.
func (s *Service) Verify(tok string) (identity.Identity, bool) {
	parsed, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return identity.Identity{}, false
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return identity.Identity{}, false
	}
	return identity.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, true
}
