package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stavrosk/checkout-gate/internal/domain"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create relies on the unique constraint on sess_id: when the insert
// conflicts, another confirmation path already recorded this session,
// so the existing row is fetched and returned as the outcome.
func (r *PurchaseRepository) Create(ctx context.Context, userID, productID, sessionID string, amount int64) (*domain.Purchase, bool, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO purchases (id, user_id, prod_id, sess_id, amt)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (sess_id) DO NOTHING
		 RETURNING id, user_id, prod_id, sess_id, amt, created_at`,
		uuid.NewString(), userID, productID, sessionID, amount,
	)
	p, err := scanPurchase(row)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, domain.ErrPurchaseNotFound) {
		return nil, false, fmt.Errorf("insert purchase: %w", err)
	}
	existing, err := r.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *PurchaseRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, prod_id, sess_id, amt, created_at
		 FROM purchases WHERE sess_id = $1`, sessionID)
	return scanPurchase(row)
}

func (r *PurchaseRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND prod_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("purchase exists: %w", err)
	}
	return exists, nil
}

func (r *PurchaseRepository) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT prod_id FROM purchases WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan purchase product: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return ids, nil
}

func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var p domain.Purchase
	err := row.Scan(&p.ID, &p.UserID, &p.ProductID, &p.SessionID, &p.Amount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	return &p, nil
}
