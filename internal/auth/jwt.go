package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"service-rider-platform/internal/apperr"
)

// Roles carried in the role claim.
const (
	RoleRider = "rider"
	RoleAdmin = "admin"
)

// Session is the authenticated caller of a request.
type Session struct {
	RiderID string
	Name    string
	Role    string
}

// RiderNumericID returns the rider id as stored in the registry.
func (s Session) RiderNumericID() (int64, error) {
	id, err := strconv.ParseInt(s.RiderID, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: rider id %q is not numeric", apperr.ErrForbidden, s.RiderID)
	}
	return id, nil
}

type sessionKey struct{}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext retrieves the session from context (if any).
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseBearer validates an Authorization header value and returns the session.
func ParseBearer(header, secret string) (Session, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Session{}, fmt.Errorf("%w: invalid authorization header", apperr.ErrUnauthorized)
	}
	s, err := parseJWT(strings.TrimSpace(parts[1]), secret)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	return s, nil
}

// parseJWT validates and extracts claims from a JWT token.
func parseJWT(tokenStr, secret string) (Session, error) {
	if secret == "" {
		return Session{}, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return Session{}, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.Subject == "" || c.Role == "" {
		return Session{}, errors.New("invalid claims")
	}
	return Session{RiderID: c.Subject, Name: c.Name, Role: strings.ToLower(c.Role)}, nil
}

// Sign issues an HS256 token for s, valid for ttl.
func Sign(secret string, s Session, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	c := claims{
		Name: s.Name,
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.RiderID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
