package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"ridepool/internal/domain"
)

// ErrInvalidToken is returned when a token is malformed, expired or forged.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified caller behind a request.
type Identity struct {
	UserID string
	Role   domain.Role
}

type claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the identity.
func (m *TokenManager) Issue(id Identity) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(id.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   id.UserID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the identity it carries.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	role := domain.Role(c.Role)
	if c.Subject == "" || !role.Valid() {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: c.Subject, Role: role}, nil
}
