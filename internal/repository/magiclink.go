package repository

import (
	"context"
	"time"
)

type MagicLinkRepository interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
	// Claim atomically marks the link used and returns its email. A link
	// can be claimed exactly once; later attempts fail with
	// domain.ErrLinkUsed, domain.ErrLinkExpired or domain.ErrLinkNotFound.
	Claim(ctx context.Context, tokenHash string, now time.Time) (string, error)
}
