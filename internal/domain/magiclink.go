package domain

import (
	"errors"
	"time"
)

var (
	ErrLinkNotFound = errors.New("magic link not found")
	ErrLinkUsed     = errors.New("magic link already used")
	ErrLinkExpired  = errors.New("magic link expired")
)

// MagicLink is a single-use, time-limited login token bound to an email.
// Only the SHA-256 hash of the raw token is ever persisted.
type MagicLink struct {
	ID        string
	Email     string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
