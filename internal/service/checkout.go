package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/notify"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5"
)

// CheckoutService converts a basket into placed orders, atomically against
// inventory.
type CheckoutService interface {
	Checkout(ctx context.Context, userID, contactID int64) (*CheckoutResult, error)
}

// CheckoutResult is the outcome of a checkout attempt. Accepted carries the
// placed order; a rejection carries the unchanged basket with shortage
// annotations on the offending lines. A rejection never mutates anything.
type CheckoutResult struct {
	Accepted bool
	Order    *domain.BuyerOrderView
}

// errCheckoutRejected aborts the checkout transaction after shortfalls were
// collected. It never escapes Checkout.
var errCheckoutRejected = errors.New("checkout rejected")

type checkoutService struct {
	store   Store
	sink    notify.Sink
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(store Store, sink notify.Sink, metrics *telemetry.BusinessMetrics, logger *slog.Logger) CheckoutService {
	return &checkoutService{store: store, sink: sink, metrics: metrics, logger: logger}
}

// Checkout locks every offer referenced by the basket, verifies availability
// of every line, and only then reserves stock and places the orders. All
// shortfalls are collected before rejecting, so the buyer sees the full list
// in one round trip rather than fixing lines one at a time.
func (s *checkoutService) Checkout(ctx context.Context, userID, contactID int64) (*CheckoutResult, error) {
	if contactID <= 0 {
		return nil, ErrBadContact
	}

	contactRow, err := s.store.GetContact(ctx, repository.GetContactParams{ID: contactID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	contact := contactView(contactRow)

	buyer, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}

	var (
		result        *CheckoutResult
		notifications []notify.Notification
		kinds         []string
	)

	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
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
		if len(sellerOrders) == 0 {
			return ErrEmptyBasket
		}

		orderItems := make(map[int64][]repository.OrderItemDetailRow, len(sellerOrders))
		offerIDs := make([]int64, 0)
		seen := make(map[int64]bool)
		for _, so := range sellerOrders {
			items, err := q.ListOrderItems(ctx, so.ID)
			if err != nil {
				return fmt.Errorf("failed to list order items: %w", err)
			}
			if len(items) == 0 {
				return ErrEmptyBasket
			}
			orderItems[so.ID] = items
			for _, item := range items {
				if !seen[item.OfferID] {
					seen[item.OfferID] = true
					offerIDs = append(offerIDs, item.OfferID)
				}
			}
		}

		// Lock offer rows in ascending id order so two concurrent checkouts
		// over overlapping baskets cannot deadlock.
		sort.Slice(offerIDs, func(i, j int) bool { return offerIDs[i] < offerIDs[j] })
		remaining := make(map[int64]int32, len(offerIDs))
		for _, id := range offerIDs {
			offer, err := q.GetOfferForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to lock offer %d: %w", id, err)
			}
			remaining[id] = offer.Quantity
		}

		views := make([]domain.SellerOrderView, 0, len(sellerOrders))
		shortfall := false
		for _, so := range sellerOrders {
			lines := orderLines(orderItems[so.ID])
			for i := range lines {
				avail := remaining[lines[i].OfferID]
				if avail < lines[i].Quantity {
					shortfall = true
					lines[i].Status = (&InsufficientStockError{
						OfferID:   lines[i].OfferID,
						Requested: lines[i].Quantity,
						Available: avail,
					}).Error()
					continue
				}
				remaining[lines[i].OfferID] = avail - lines[i].Quantity
			}
			views = append(views, domain.SellerOrderView{
				ID:            so.ID,
				ShopID:        so.ShopID,
				ShopName:      so.ShopName,
				State:         domain.SellerOrderState(so.State),
				ShippingPrice: so.ShippingPrice,
				Items:         lines,
				Summary:       domain.ComputeSummary(lines, so.ShippingPrice),
			})
		}

		if shortfall {
			result = &CheckoutResult{
				Accepted: false,
				Order: &domain.BuyerOrderView{
					ID:           basket.ID,
					State:        domain.BuyerOrderBasket,
					SellerOrders: views,
					TotalSum:     domain.ComputeTotalSum(views),
				},
			}
			return errCheckoutRejected
		}

		for _, id := range offerIDs {
			if err := q.UpdateOfferQuantity(ctx, repository.UpdateOfferQuantityParams{
				ID:       id,
				Quantity: remaining[id],
			}); err != nil {
				return fmt.Errorf("failed to reserve stock for offer %d: %w", id, err)
			}
		}

		now := timestamptzNow()
		placedAt := now.Time
		for i, so := range sellerOrders {
			if err := q.PlaceSellerOrder(ctx, repository.PlaceSellerOrderParams{
				ID:        so.ID,
				State:     string(domain.SellerOrderNew),
				ContactID: contactID,
				CreatedAt: now,
			}); err != nil {
				return fmt.Errorf("failed to place seller order %d: %w", so.ID, err)
			}
			views[i].State = domain.SellerOrderNew
			views[i].CreatedAt = &placedAt
			views[i].UpdatedAt = &placedAt
		}
		if err := q.AcceptBuyerOrder(ctx, repository.AcceptBuyerOrderParams{
			ID:        basket.ID,
			State:     string(domain.BuyerOrderAccepted),
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to accept buyer order %d: %w", basket.ID, err)
		}

		order := &domain.BuyerOrderView{
			ID:           basket.ID,
			State:        domain.BuyerOrderAccepted,
			CreatedAt:    &placedAt,
			Contact:      contact,
			SellerOrders: views,
			TotalSum:     domain.ComputeTotalSum(views),
		}
		result = &CheckoutResult{Accepted: true, Order: order}

		for i, so := range sellerOrders {
			notifications = append(notifications, shopOrderPlaced(so.ShopEmail, views[i], contact))
			kinds = append(kinds, notifyOrderPlaced)
		}
		notifications = append(notifications, buyerOrderAccepted(buyer.Email, *order))
		kinds = append(kinds, notifyOrderConfirmation)
		return nil
	})

	if errors.Is(err, errCheckoutRejected) {
		s.metrics.CheckoutsRejected.Inc()
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	s.metrics.CheckoutsAccepted.Inc()
	s.metrics.OrderValue.Observe(float64(result.Order.TotalSum))
	var lineTotal int
	for _, so := range result.Order.SellerOrders {
		lineTotal += len(so.Items)
	}
	s.metrics.OrderItemCount.Observe(float64(lineTotal))

	s.deliver(ctx, notifications, kinds)
	return result, nil
}

// deliver hands notifications to the sink after the transaction committed.
// Delivery failures are logged, never surfaced: the order is already placed.
func (s *checkoutService) deliver(ctx context.Context, notifications []notify.Notification, kinds []string) {
	for i, n := range notifications {
		if err := s.sink.Notify(ctx, n); err != nil {
			s.metrics.NotificationsFailed.WithLabelValues(kinds[i]).Inc()
			s.logger.Error("failed to deliver notification",
				slog.String("kind", kinds[i]),
				slog.String("recipient", n.Recipient),
				slog.String("error", err.Error()))
			continue
		}
		s.metrics.NotificationsSent.WithLabelValues(kinds[i]).Inc()
	}
}
