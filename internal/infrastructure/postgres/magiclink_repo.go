package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stavrosk/checkout-gate/internal/domain"
)

type MagicLinkRepository struct {
	pool *pgxpool.Pool
}

func NewMagicLinkRepository(pool *pgxpool.Pool) *MagicLinkRepository {
	return &MagicLinkRepository{pool: pool}
}

func (r *MagicLinkRepository) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO magic_links (id, email, token_hash, expires_at, used)
		 VALUES ($1, $2, $3, $4, FALSE)`,
		uuid.NewString(), email, tokenHash, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert magic link: %w", err)
	}
	return nil
}

// Claim flips used in the same statement that checks it, so a link can
// never be redeemed twice even under concurrent attempts. When the
// update matches nothing, a second read classifies the failure.
func (r *MagicLinkRepository) Claim(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx,
		`UPDATE magic_links SET used = TRUE
		 WHERE token_hash = $1 AND used = FALSE AND expires_at > $2
		 RETURNING email`,
		tokenHash, now,
	).Scan(&email)
	if err == nil {
		return email, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("claim magic link: %w", err)
	}

	var used bool
	var expiresAt time.Time
	err = r.pool.QueryRow(ctx,
		`SELECT used, expires_at FROM magic_links WHERE token_hash = $1`,
		tokenHash,
	).Scan(&used, &expiresAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return "", domain.ErrLinkNotFound
	case err != nil:
		return "", fmt.Errorf("inspect magic link: %w", err)
	case used:
		return "", domain.ErrLinkUsed
	default:
		return "", domain.ErrLinkExpired
	}
}
