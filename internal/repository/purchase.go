package repository

import (
	"context"

	"github.com/stavrosk/checkout-gate/internal/domain"
)

type PurchaseRepository interface {
	// Create inserts a purchase for the session. If another path already
	// recorded the same session id, Create returns the existing row
	// instead of an error: losing the insert race means the work is
	// done. The bool reports whether this call inserted the row.
	Create(ctx context.Context, userID, productID, sessionID string, amount int64) (*domain.Purchase, bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error)
	// Exists reports whether the user owns the product.
	Exists(ctx context.Context, userID, productID string) (bool, error)
	// ListProductIDs returns the product ids the user has purchased.
	ListProductIDs(ctx context.Context, userID string) ([]string, error)
}
