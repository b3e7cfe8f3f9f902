package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is created on first confirmed payment or first magic-link
// redemption for an email. Identity key is the email; never deleted.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
