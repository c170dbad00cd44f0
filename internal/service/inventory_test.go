package service

import (
	"context"
	"testing"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveStock(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements quantity", func(t *testing.T) {
		store := newFakeStore()
		owner := store.addUser("shop@example.com", "seller")
		shop := store.addShop(owner.ID, "Acme", "shop@example.com", true, 300)
		offer := store.addOffer(shop.ID, "Widget", 100, 10, 500, 600)

		remaining, err := ReserveStock(ctx, store, offer.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, int32(6), remaining)
		assert.Equal(t, int32(6), store.offers[offer.ID].Quantity)
	})

	t.Run("allows draining to zero", func(t *testing.T) {
		store := newFakeStore()
		owner := store.addUser("shop@example.com", "seller")
		shop := store.addShop(owner.ID, "Acme", "shop@example.com", true, 300)
		offer := store.addOffer(shop.ID, "Widget", 100, 3, 500, 600)

		remaining, err := ReserveStock(ctx, store, offer.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, int32(0), remaining)
	})

	t.Run("rejects shortfall without mutating", func(t *testing.T) {
		store := newFakeStore()
		owner := store.addUser("shop@example.com", "seller")
		shop := store.addShop(owner.ID, "Acme", "shop@example.com", true, 300)
		offer := store.addOffer(shop.ID, "Widget", 100, 2, 500, 600)

		_, err := ReserveStock(ctx, store, offer.ID, 5)
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int32(5), insufficient.Requested)
		assert.Equal(t, int32(2), insufficient.Available)
		assert.Equal(t, "too many ordered. You ordered 5 pcs, but only 2 pcs in stock", err.Error())
		assert.Equal(t, int32(2), store.offers[offer.ID].Quantity)
	})

	t.Run("unknown offer", func(t *testing.T) {
		store := newFakeStore()
		_, err := ReserveStock(ctx, store, 42, 1)
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		store := newFakeStore()
		_, err := ReserveStock(ctx, store, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestReleaseStock(t *testing.T) {
	ctx := context.Background()

	t.Run("increments quantity", func(t *testing.T) {
		store := newFakeStore()
		owner := store.addUser("shop@example.com", "seller")
		shop := store.addShop(owner.ID, "Acme", "shop@example.com", true, 300)
		offer := store.addOffer(shop.ID, "Widget", 100, 1, 500, 600)

		remaining, err := ReleaseStock(ctx, store, offer.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, int32(5), remaining)
		assert.Equal(t, int32(5), store.offers[offer.ID].Quantity)
	})

	t.Run("missing offer is an internal error", func(t *testing.T) {
		store := newFakeStore()
		_, err := ReleaseStock(ctx, store, 42, 1)
		assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
	})
}
