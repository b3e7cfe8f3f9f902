package usecase

import (
	"context"
	"fmt"

	"github.com/stavrosk/checkout-gate/internal/repository"
)

// AccessUsecase answers "does this user own this product". Pure reads.
type AccessUsecase struct {
	purchases repository.PurchaseRepository
}

func NewAccessUsecase(purchases repository.PurchaseRepository) *AccessUsecase {
	return &AccessUsecase{purchases: purchases}
}

// CanAccess is false for anonymous callers and for users without a
// purchase of the product.
func (u *AccessUsecase) CanAccess(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := u.purchases.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return ok, nil
}

// OwnedProducts lists the product ids the user owns, for the storefront
// page. Anonymous callers own nothing.
func (u *AccessUsecase) OwnedProducts(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	ids, err := u.purchases.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned products: %w", err)
	}
	return ids, nil
}
