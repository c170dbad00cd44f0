package service

import (
	"context"
	"testing"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketAddItems(t *testing.T) {
	ctx := context.Background()

	t.Run("creates basket and groups lines by shop", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")
		ownerA := store.addUser("a@example.com", "seller")
		ownerB := store.addUser("b@example.com", "seller")
		shopA := store.addShop(ownerA.ID, "Shop A", "a@example.com", true, 300)
		shopB := store.addShop(ownerB.ID, "Shop B", "b@example.com", true, 150)
		offerA := store.addOffer(shopA.ID, "Widget", 100, 10, 500, 600)
		offerB := store.addOffer(shopB.ID, "Gadget", 200, 5, 900, 1000)

		svc := NewBasketService(store, newTestMetrics())
		basket, err := svc.AddItems(ctx, buyer.ID, []BasketItem{
			{OfferID: offerA.ID, Quantity: 2},
			{OfferID: offerB.ID, Quantity: 1},
		})
		require.NoError(t, err)

		require.Len(t, basket.SellerOrders, 2)
		assert.Equal(t, domain.BuyerOrderBasket, basket.State)
		byShop := map[int64]domain.SellerOrderView{}
		for _, so := range basket.SellerOrders {
			byShop[so.ShopID] = so
		}
		assert.Equal(t, int32(300), byShop[shopA.ID].ShippingPrice)
		assert.Equal(t, int32(150), byShop[shopB.ID].ShippingPrice)
		require.Len(t, byShop[shopA.ID].Items, 1)
		assert.Equal(t, int32(2), byShop[shopA.ID].Items[0].Quantity)
		assert.Equal(t, int32(500), byShop[shopA.ID].Items[0].PurchasePrice)
		// 2*500 + 300 shipping
		assert.Equal(t, int64(1300), byShop[shopA.ID].Summary)
		assert.Equal(t, int64(1300+900+150), basket.TotalSum)
	})

	t.Run("replaces quantity and re-stamps price", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")
		owner := store.addUser("shop@example.com", "seller")
		shop := store.addShop(owner.ID, "Acme", "shop@example.com", true, 300)
		offer := store.addOffer(shop.ID, "Widget", 100, 10, 500, 600)

		svc := NewBasketService(store, newTestMetrics())
		_, err := svc.AddItems(ctx, buyer.ID, []BasketItem{{OfferID: offer.ID, Quantity: 2}})
		require.NoError(t, err)

		// Shop reprices the offer, buyer re-adds the line.
		repriced := store.offers[offer.ID]
		repriced.Price = 450
		store.offers[offer.ID] = repriced

		basket, err := svc.AddItems(ctx, buyer.ID, []BasketItem{{OfferID: offer.ID, Quantity: 5}})
		require.NoError(t, err)

		require.Len(t, basket.SellerOrders, 1)
		require.Len(t, basket.SellerOrders[0].Items, 1)
		line := basket.SellerOrders[0].Items[0]
		assert.Equal(t, int32(5), line.Quantity, "quantity is replaced, not added")
		assert.Equal(t, int32(450), line.PurchasePrice)
	})

	t.Run("unknown offer rejects the request", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")

		svc := NewBasketService(store, newTestMetrics())
		_, err := svc.AddItems(ctx, buyer.ID, []BasketItem{{OfferID: 42, Quantity: 1}})
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})

	t.Run("closed shop offers are skipped silently", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")
		openOwner := store.addUser("open@example.com", "seller")
		closedOwner := store.addUser("closed@example.com", "seller")
		openShop := store.addShop(openOwner.ID, "Open", "open@example.com", true, 300)
		closedShop := store.addShop(closedOwner.ID, "Closed", "closed@example.com", false, 300)
		openOffer := store.addOffer(openShop.ID, "Widget", 100, 10, 500, 600)
		closedOffer := store.addOffer(closedShop.ID, "Gadget", 200, 10, 900, 1000)

		svc := NewBasketService(store, newTestMetrics())
		basket, err := svc.AddItems(ctx, buyer.ID, []BasketItem{
			{OfferID: openOffer.ID, Quantity: 1},
			{OfferID: closedOffer.ID, Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, basket.SellerOrders, 1)
		assert.Equal(t, openShop.ID, basket.SellerOrders[0].ShopID)
	})

	t.Run("only closed shop offers leaves no basket behind", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")
		owner := store.addUser("closed@example.com", "seller")
		shop := store.addShop(owner.ID, "Closed", "closed@example.com", false, 300)
		offer := store.addOffer(shop.ID, "Gadget", 200, 10, 900, 1000)

		svc := NewBasketService(store, newTestMetrics())
		basket, err := svc.AddItems(ctx, buyer.ID, []BasketItem{{OfferID: offer.ID, Quantity: 1}})
		require.NoError(t, err)
		assert.Empty(t, basket.SellerOrders)
		assert.Empty(t, store.buyerOrders, "empty baskets do not persist")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")

		svc := NewBasketService(store, newTestMetrics())
		_, err := svc.AddItems(ctx, buyer.ID, []BasketItem{{OfferID: 1, Quantity: 0}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestBasketRemoveItems(t *testing.T) {
	ctx := context.Background()

	seed := func() (*fakeStore, BasketService, int64, []int64) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")
		ownerA := store.addUser("a@example.com", "seller")
		ownerB := store.addUser("b@example.com", "seller")
		shopA := store.addShop(ownerA.ID, "Shop A", "a@example.com", true, 300)
		shopB := store.addShop(ownerB.ID, "Shop B", "b@example.com", true, 150)
		offerA := store.addOffer(shopA.ID, "Widget", 100, 10, 500, 600)
		offerB := store.addOffer(shopB.ID, "Gadget", 200, 5, 900, 1000)

		svc := NewBasketService(store, newTestMetrics())
		_, err := svc.AddItems(ctx, buyer.ID, []BasketItem{
			{OfferID: offerA.ID, Quantity: 2},
			{OfferID: offerB.ID, Quantity: 1},
		})
		if err != nil {
			t.Fatalf("seed basket: %v", err)
		}
		return store, svc, buyer.ID, []int64{offerA.ID, offerB.ID}
	}

	t.Run("removes a line and its emptied seller order", func(t *testing.T) {
		store, svc, buyerID, offerIDs := seed()

		basket, err := svc.RemoveItems(ctx, buyerID, offerIDs[:1])
		require.NoError(t, err)
		assert.Len(t, basket.SellerOrders, 1)
		assert.Len(t, store.sellerOrders, 1)
	})

	t.Run("removal is keyed on the offer ids used to add", func(t *testing.T) {
		store, svc, buyerID, offerIDs := seed()

		basket, err := svc.RemoveItems(ctx, buyerID, offerIDs[:1])
		require.NoError(t, err)
		require.Len(t, basket.SellerOrders, 1)
		require.Len(t, basket.SellerOrders[0].Items, 1)
		assert.Equal(t, offerIDs[1], basket.SellerOrders[0].Items[0].OfferID)
		for _, item := range store.items {
			assert.NotEqual(t, offerIDs[0], item.OfferID)
		}
	})

	t.Run("removing every line deletes the basket", func(t *testing.T) {
		store, svc, buyerID, offerIDs := seed()

		basket, err := svc.RemoveItems(ctx, buyerID, offerIDs)
		require.NoError(t, err)
		assert.Empty(t, basket.SellerOrders)
		assert.Empty(t, store.buyerOrders)
		assert.Empty(t, store.sellerOrders)
		assert.Empty(t, store.items)
	})

	t.Run("unknown ids reject the whole removal", func(t *testing.T) {
		store, svc, buyerID, offerIDs := seed()

		_, err := svc.RemoveItems(ctx, buyerID, []int64{offerIDs[0], 777, 555})
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		assert.Equal(t, "Unknown ids 555, 777", domain.ErrorMessage(err))
		// Nothing was deleted.
		assert.Len(t, store.items, 2)
	})

	t.Run("no basket", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")

		svc := NewBasketService(store, newTestMetrics())
		_, err := svc.RemoveItems(ctx, buyer.ID, []int64{1})
		assert.ErrorIs(t, err, ErrBasketNotFound)
	})
}

func TestBasketGet(t *testing.T) {
	ctx := context.Background()

	t.Run("empty view without a basket", func(t *testing.T) {
		store := newFakeStore()
		buyer := store.addUser("buyer@example.com", "buyer")

		svc := NewBasketService(store, newTestMetrics())
		basket, err := svc.Get(ctx, buyer.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BuyerOrderBasket, basket.State)
		assert.Empty(t, basket.SellerOrders)
		assert.Zero(t, basket.TotalSum)
	})
}
