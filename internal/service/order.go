package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/notify"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5"
)

// OrderService exposes placed orders to the buyer who owns them.
type OrderService interface {
	ListOrders(ctx context.Context, userID int64) ([]domain.BuyerOrderView, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*domain.BuyerOrderView, error)
	CancelSellerOrder(ctx context.Context, userID, sellerOrderID int64) error
}

type orderService struct {
	store   Store
	sink    notify.Sink
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store Store, sink notify.Sink, metrics *telemetry.BusinessMetrics, logger *slog.Logger) OrderService {
	return &orderService{store: store, sink: sink, metrics: metrics, logger: logger}
}

// ListOrders returns every placed order of the user, newest first. The open
// basket is not an order and never appears here.
func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]domain.BuyerOrderView, error) {
	orders, err := s.store.ListBuyerOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	views := make([]domain.BuyerOrderView, 0, len(orders))
	for _, order := range orders {
		view, err := buyerOrderView(ctx, s.store, order)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetOrder returns one placed order. Orders of other users come back as not
// found, not forbidden, so ids cannot be probed.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.BuyerOrderView, error) {
	order, err := s.store.GetBuyerOrderForUser(ctx, repository.GetBuyerOrderForUserParams{
		ID:     orderID,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return buyerOrderView(ctx, s.store, order)
}

// CancelSellerOrder cancels one seller order on behalf of the buyer. A line
// still in the basket is simply removed. A placed order can be canceled
// until the shop ships it; its stock goes back to the offers it was reserved
// from and the buyer order degrades to partial_accepted. Anything already
// sent, delivered or canceled is refused.
func (s *orderService) CancelSellerOrder(ctx context.Context, userID, sellerOrderID int64) error {
	row, err := s.store.GetSellerOrderDetail(ctx, sellerOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to get seller order: %w", err)
	}
	if row.BuyerID != userID {
		return ErrOrderNotFound
	}

	var canceled domain.SellerOrderView
	var discarded bool
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		// The detail read above is unlocked, so a concurrent cancel may have
		// moved the state since. The cancelable gate must hold on the locked
		// row, or two racing cancels would both release the stock.
		locked, err := q.GetSellerOrderForUpdate(ctx, sellerOrderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to lock seller order: %w", err)
		}
		state := domain.SellerOrderState(locked.State)
		if !state.CancelableByBuyer() {
			return ErrNotCancelable
		}

		if state == domain.SellerOrderBasket {
			discarded = true
			return discardBasketOrder(ctx, q, locked.ID, locked.BuyerOrderID)
		}

		items, err := q.ListOrderItems(ctx, sellerOrderID)
		if err != nil {
			return fmt.Errorf("failed to list order items: %w", err)
		}

		for _, item := range items {
			if _, err := ReleaseStock(ctx, q, item.OfferID, item.Quantity); err != nil {
				return err
			}
		}

		if err := q.SetSellerOrderState(ctx, repository.SetSellerOrderStateParams{
			ID:    sellerOrderID,
			State: string(domain.SellerOrderCanceled),
		}); err != nil {
			return fmt.Errorf("failed to cancel seller order: %w", err)
		}
		if err := q.SetBuyerOrderState(ctx, repository.SetBuyerOrderStateParams{
			ID:    locked.BuyerOrderID,
			State: string(domain.BuyerOrderPartialAccepted),
		}); err != nil {
			return fmt.Errorf("failed to downgrade buyer order: %w", err)
		}

		lines := orderLines(items)
		canceled = domain.SellerOrderView{
			ID:            sellerOrderID,
			ShopID:        locked.ShopID,
			ShopName:      row.ShopName,
			State:         domain.SellerOrderCanceled,
			ShippingPrice: locked.ShippingPrice,
			Items:         lines,
			Summary:       domain.ComputeSummary(lines, locked.ShippingPrice),
		}
		return nil
	})
	if err != nil {
		return err
	}
	if discarded {
		return nil
	}

	s.metrics.OrdersCanceled.WithLabelValues("buyer").Inc()
	s.metrics.InventoryRollbacks.Inc()

	if err := s.sink.Notify(ctx, shopOrderCanceled(row.ShopEmail, canceled)); err != nil {
		s.metrics.NotificationsFailed.WithLabelValues(notifyOrderCanceled).Inc()
		s.logger.Error("failed to deliver cancellation notification",
			slog.Int64("seller_order_id", sellerOrderID),
			slog.String("error", err.Error()))
	} else {
		s.metrics.NotificationsSent.WithLabelValues(notifyOrderCanceled).Inc()
	}
	return nil
}

// discardBasketOrder hard-deletes a seller order that never left the basket.
// No stock was reserved, so nothing is released and nobody is notified. Runs
// inside the caller's transaction, under the seller order's row lock.
func discardBasketOrder(ctx context.Context, q repository.Querier, orderID, buyerOrderID int64) error {
	items, err := q.ListOrderItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to list order items: %w", err)
	}
	if len(items) > 0 {
		ids := make([]int64, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}
		if err := q.DeleteOrderItems(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete basket lines: %w", err)
		}
	}

	if err := q.DeleteSellerOrders(ctx, []int64{orderID}); err != nil {
		return fmt.Errorf("failed to delete seller order: %w", err)
	}

	count, err := q.CountSellerOrders(ctx, buyerOrderID)
	if err != nil {
		return fmt.Errorf("failed to count seller orders: %w", err)
	}
	if count == 0 {
		if err := q.DeleteBuyerOrder(ctx, buyerOrderID); err != nil {
			return fmt.Errorf("failed to delete emptied basket: %w", err)
		}
	}
	return nil
}
