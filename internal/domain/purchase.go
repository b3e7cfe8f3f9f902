package domain

import (
	"errors"
	"time"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

// Purchase records one confirmed payment. SessionID is the external
// checkout session id and is unique: no matter how many times a
// completion is observed (webhook retries, redirect reloads, both),
// at most one row exists per session.
type Purchase struct {
	ID        string
	UserID    string
	ProductID string
	SessionID string
	Amount    int64
	CreatedAt time.Time
}

// Confirmation is the normalized "payment for this session succeeded"
// fact, regardless of which path observed it.
type Confirmation struct {
	SessionID string
	Email     string
	ProductID string
	Amount    int64
}
