package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5"
)

// BasketService manages the buyer's open basket: one per user, materialized
// lazily on the first added line.
type BasketService interface {
	Get(ctx context.Context, userID int64) (*domain.BuyerOrderView, error)
	AddItems(ctx context.Context, userID int64, items []BasketItem) (*domain.BuyerOrderView, error)
	RemoveItems(ctx context.Context, userID int64, offerIDs []int64) (*domain.BuyerOrderView, error)
}

// BasketItem is one requested basket line. Quantity replaces any existing
// line for the same offer, it is not added to it.
type BasketItem struct {
	OfferID  int64 `json:"product_info" validate:"required,gt=0"`
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

type basketService struct {
	store   Store
	metrics *telemetry.BusinessMetrics
}

// NewBasketService creates a new BasketService instance.
func NewBasketService(store Store, metrics *telemetry.BusinessMetrics) BasketService {
	return &basketService{store: store, metrics: metrics}
}

// Get returns the user's open basket. A user with no basket gets an empty
// view rather than an error.
func (s *basketService) Get(ctx context.Context, userID int64) (*domain.BuyerOrderView, error) {
	basket, err := s.store.GetBasketByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.BuyerOrderView{
				State:        domain.BuyerOrderBasket,
				SellerOrders: []domain.SellerOrderView{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get basket: %w", err)
	}

	return buyerOrderView(ctx, s.store, basket)
}

// AddItems upserts lines into the basket, creating the basket and the
// per-shop seller orders as needed. An unknown offer rejects the whole
// request; offers from closed shops are skipped silently. The seller order's
// shipping price is frozen from the shop's base rate at creation.
func (s *basketService) AddItems(ctx context.Context, userID int64, items []BasketItem) (*domain.BuyerOrderView, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("basket.add", "No items provided")
	}
	offerIDs := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.OfferID <= 0 {
			return nil, ErrOfferNotFound
		}
		if !seen[item.OfferID] {
			seen[item.OfferID] = true
			offerIDs = append(offerIDs, item.OfferID)
		}
	}

	var added int
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		basket, err := q.CreateBasket(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get or create basket: %w", err)
		}

		offers, err := q.ListOfferDetails(ctx, offerIDs)
		if err != nil {
			return fmt.Errorf("failed to load offers: %w", err)
		}
		byID := make(map[int64]repository.OfferDetailRow, len(offers))
		for _, offer := range offers {
			byID[offer.ID] = offer
		}
		for _, id := range offerIDs {
			if _, ok := byID[id]; !ok {
				return domain.NotFound("basket.add", "offer", id)
			}
		}

		for _, item := range items {
			offer := byID[item.OfferID]
			if !offer.ShopIsOpen {
				continue
			}

			so, err := q.GetBasketSellerOrder(ctx, repository.GetBasketSellerOrderParams{
				BuyerOrderID: basket.ID,
				ShopID:       offer.ShopID,
			})
			if errors.Is(err, pgx.ErrNoRows) {
				so, err = q.CreateSellerOrder(ctx, repository.CreateSellerOrderParams{
					BuyerOrderID:  basket.ID,
					ShopID:        offer.ShopID,
					ShippingPrice: offer.BaseShippingPrice,
				})
			}
			if err != nil {
				return fmt.Errorf("failed to resolve seller order for shop %d: %w", offer.ShopID, err)
			}

			if _, err := q.UpsertOrderItem(ctx, repository.UpsertOrderItemParams{
				SellerOrderID:    so.ID,
				OfferID:          offer.ID,
				Quantity:         item.Quantity,
				PurchasePrice:    offer.Price,
				PurchasePriceRrc: offer.PriceRrc,
			}); err != nil {
				return fmt.Errorf("failed to upsert basket line: %w", err)
			}
			added++
		}

		// Every requested offer may have come from a closed shop. Empty
		// baskets do not persist, so a basket materialized for nothing is
		// removed again.
		if added == 0 {
			count, err := q.CountSellerOrders(ctx, basket.ID)
			if err != nil {
				return fmt.Errorf("failed to count seller orders: %w", err)
			}
			if count == 0 {
				if err := q.DeleteBuyerOrder(ctx, basket.ID); err != nil {
					return fmt.Errorf("failed to delete empty basket: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BasketItemsAdded.Add(float64(added))
	return s.Get(ctx, userID)
}

// RemoveItems deletes lines from the basket by offer id, the same id space
// used to add them. The removal is all or nothing: any offer without a line
// in the caller's basket rejects the whole request. Seller orders emptied by
// the removal are deleted, and the basket itself goes when its last seller
// order does.
func (s *basketService) RemoveItems(ctx context.Context, userID int64, offerIDs []int64) (*domain.BuyerOrderView, error) {
	if len(offerIDs) == 0 {
		return nil, domain.Invalid("basket.remove", "No item ids provided")
	}
	ids := make([]int64, 0, len(offerIDs))
	seen := make(map[int64]bool, len(offerIDs))
	for _, id := range offerIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var basketDeleted bool
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		basket, err := q.GetBasketByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrBasketNotFound
			}
			return fmt.Errorf("failed to get basket: %w", err)
		}

		sellerOrders, err := q.ListSellerOrders(ctx, basket.ID)
		if err != nil {
			return fmt.Errorf("failed to list seller orders: %w", err)
		}

		// Lines group by the offer's shop, so an offer has at most one line
		// per basket; lineFor resolves each offer to that line and its
		// owning seller order.
		type basketLine struct {
			itemID        int64
			sellerOrderID int64
		}
		lineFor := make(map[int64]basketLine)
		lineCount := make(map[int64]int)
		for _, so := range sellerOrders {
			items, err := q.ListOrderItems(ctx, so.ID)
			if err != nil {
				return fmt.Errorf("failed to list order items: %w", err)
			}
			for _, item := range items {
				lineFor[item.OfferID] = basketLine{itemID: item.ID, sellerOrderID: so.ID}
				lineCount[so.ID]++
			}
		}

		var unknown []int64
		for _, id := range ids {
			if _, ok := lineFor[id]; !ok {
				unknown = append(unknown, id)
			}
		}
		if len(unknown) > 0 {
			sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
			return UnknownItemsError(unknown)
		}

		itemIDs := make([]int64, len(ids))
		for i, id := range ids {
			itemIDs[i] = lineFor[id].itemID
		}
		if err := q.DeleteOrderItems(ctx, itemIDs); err != nil {
			return fmt.Errorf("failed to delete basket lines: %w", err)
		}

		for _, id := range ids {
			lineCount[lineFor[id].sellerOrderID]--
		}
		var emptied []int64
		for _, so := range sellerOrders {
			if lineCount[so.ID] == 0 {
				emptied = append(emptied, so.ID)
			}
		}
		if len(emptied) > 0 {
			if err := q.DeleteSellerOrders(ctx, emptied); err != nil {
				return fmt.Errorf("failed to delete emptied seller orders: %w", err)
			}
		}

		if len(emptied) == len(sellerOrders) {
			if err := q.DeleteBuyerOrder(ctx, basket.ID); err != nil {
				return fmt.Errorf("failed to delete emptied basket: %w", err)
			}
			basketDeleted = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.BasketItemsRemoved.Add(float64(len(ids)))
	if basketDeleted {
		return &domain.BuyerOrderView{
			State:        domain.BuyerOrderBasket,
			SellerOrders: []domain.SellerOrderView{},
		}, nil
	}
	return s.Get(ctx, userID)
}
