package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
)

// InsufficientStockError reports a reservation that asked for more than the
// offer currently holds. Error renders the exact annotation attached to
// rejected checkout lines.
type InsufficientStockError struct {
	OfferID   int64
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("too many ordered. You ordered %d pcs, but only %d pcs in stock",
		e.Requested, e.Available)
}

// ReserveStock atomically decrements an offer's available quantity by qty.
// The offer row is locked first, so the check-then-decrement cannot race
// with a concurrent reservation. Must run inside a transaction; the lock is
// released at commit.
//
// Returns the remaining quantity, or InsufficientStockError without touching
// the row when availability falls short. Quantity never goes below zero.
func ReserveStock(ctx context.Context, q repository.Querier, offerID int64, qty int32) (int32, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	offer, err := q.GetOfferForUpdate(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.NotFound("inventory.reserve", "offer", offerID)
		}
		return 0, fmt.Errorf("failed to lock offer %d: %w", offerID, err)
	}

	if offer.Quantity < qty {
		return 0, &InsufficientStockError{
			OfferID:   offerID,
			Requested: qty,
			Available: offer.Quantity,
		}
	}

	remaining := offer.Quantity - qty
	if err := q.UpdateOfferQuantity(ctx, repository.UpdateOfferQuantityParams{
		ID:       offerID,
		Quantity: remaining,
	}); err != nil {
		return 0, fmt.Errorf("failed to decrement offer %d: %w", offerID, err)
	}

	return remaining, nil
}

// ReleaseStock returns qty units to an offer after a cancellation. A missing
// offer row here means the catalogue lost a row that still has open
// reservations against it; the error aborts the surrounding transaction so
// the cancellation is not half-applied.
func ReleaseStock(ctx context.Context, q repository.Querier, offerID int64, qty int32) (int32, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	offer, err := q.GetOfferForUpdate(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.Internal(err, "inventory.release",
				fmt.Sprintf("offer %d vanished with reservations outstanding", offerID))
		}
		return 0, fmt.Errorf("failed to lock offer %d: %w", offerID, err)
	}

	remaining := offer.Quantity + qty
	if err := q.UpdateOfferQuantity(ctx, repository.UpdateOfferQuantityParams{
		ID:       offerID,
		Quantity: remaining,
	}); err != nil {
		return 0, fmt.Errorf("failed to increment offer %d: %w", offerID, err)
	}

	return remaining, nil
}
