// Package session issues and parses the signed token that identifies a
// browser as a user. The token is a client-held HS256 JWT carried in a
// cookie; setting and clearing it are the only mutations.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the cookie the token travels in.
	CookieName = "session"
	// TTL matches the storefront's long-lived browser sessions.
	TTL = 365 * 24 * time.Hour
)

var ErrTokenInvalid = errors.New("session token is invalid or expired")

type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(secret []byte) *Manager {
	return &Manager{key: secret, ttl: TTL}
}

// Issue signs a token for the user id.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the user id it was issued for.
func (m *Manager) Parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}
	return userID, nil
}

// MaxAge is the cookie max-age in seconds for Issue'd tokens.
func (m *Manager) MaxAge() int {
	return int(m.ttl / time.Second)
}
