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

// PartnerService exposes a shop's orders and state to its owner.
type PartnerService interface {
	GetShop(ctx context.Context, ownerID int64) (*domain.Shop, error)
	SetShopOpen(ctx context.Context, ownerID int64, isOpen bool) (*domain.Shop, error)
	ListShopOffers(ctx context.Context, ownerID int64) ([]domain.OfferSnapshot, error)
	ListShopOrders(ctx context.Context, ownerID int64) ([]domain.SellerOrderView, error)
	GetShopOrder(ctx context.Context, ownerID, orderID int64) (*domain.SellerOrderView, error)
	UpdateShopOrder(ctx context.Context, ownerID, orderID int64, params UpdateShopOrderParams) (*domain.SellerOrderView, error)
}

// UpdateShopOrderParams carries a partial order update. Nil fields are left
// untouched.
type UpdateShopOrderParams struct {
	State         *string `json:"state" validate:"omitempty,oneof=new confirmed assembled sent delivered canceled"`
	ShippingPrice *int32  `json:"shipping_price" validate:"omitempty,gte=0"`
}

type partnerService struct {
	store   Store
	sink    notify.Sink
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewPartnerService creates a new PartnerService instance.
func NewPartnerService(store Store, sink notify.Sink, metrics *telemetry.BusinessMetrics, logger *slog.Logger) PartnerService {
	return &partnerService{store: store, sink: sink, metrics: metrics, logger: logger}
}

func (s *partnerService) shopByOwner(ctx context.Context, ownerID int64) (repository.Shop, error) {
	shop, err := s.store.GetShopByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Shop{}, ErrShopNotFound
		}
		return repository.Shop{}, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

func shopView(shop repository.Shop) *domain.Shop {
	return &domain.Shop{
		ID:                shop.ID,
		OwnerID:           shop.OwnerID,
		Name:              shop.Name,
		URL:               shop.Url.String,
		Email:             shop.Email,
		IsOpen:            shop.IsOpen,
		BaseShippingPrice: shop.BaseShippingPrice,
	}
}

func (s *partnerService) GetShop(ctx context.Context, ownerID int64) (*domain.Shop, error) {
	shop, err := s.shopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return shopView(shop), nil
}

// SetShopOpen toggles the shop's catalogue visibility. Closing a shop hides
// its offers from buyers and keeps new basket lines out, but placed orders
// continue through their lifecycle.
func (s *partnerService) SetShopOpen(ctx context.Context, ownerID int64, isOpen bool) (*domain.Shop, error) {
	shop, err := s.shopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.SetShopOpen(ctx, repository.SetShopOpenParams{ID: shop.ID, IsOpen: isOpen})
	if err != nil {
		return nil, fmt.Errorf("failed to update shop state: %w", err)
	}
	return shopView(updated), nil
}

func (s *partnerService) ListShopOffers(ctx context.Context, ownerID int64) ([]domain.OfferSnapshot, error) {
	shop, err := s.shopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListShopOffers(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop offers: %w", err)
	}

	offers := make([]domain.OfferSnapshot, len(rows))
	for i, row := range rows {
		offers[i] = offerSnapshot(row)
	}
	return offers, nil
}

// ListShopOrders returns every placed order slice routed to the partner's
// shop. Buyer baskets are invisible until checkout.
func (s *partnerService) ListShopOrders(ctx context.Context, ownerID int64) ([]domain.SellerOrderView, error) {
	shop, err := s.shopByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListShopOrders(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop orders: %w", err)
	}

	views := make([]domain.SellerOrderView, 0, len(rows))
	for _, row := range rows {
		view, err := sellerOrderView(ctx, s.store, row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *partnerService) getShopOrderRow(ctx context.Context, ownerID, orderID int64) (repository.SellerOrderDetailRow, error) {
	shop, err := s.shopByOwner(ctx, ownerID)
	if err != nil {
		return repository.SellerOrderDetailRow{}, err
	}

	row, err := s.store.GetSellerOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.SellerOrderDetailRow{}, ErrOrderNotFound
		}
		return repository.SellerOrderDetailRow{}, fmt.Errorf("failed to get seller order: %w", err)
	}
	if row.ShopID != shop.ID || row.State == string(domain.SellerOrderBasket) {
		return repository.SellerOrderDetailRow{}, ErrOrderNotFound
	}
	return row, nil
}

func (s *partnerService) GetShopOrder(ctx context.Context, ownerID, orderID int64) (*domain.SellerOrderView, error) {
	row, err := s.getShopOrderRow(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	view, err := sellerOrderView(ctx, s.store, row)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateShopOrder applies a state transition, a shipping price change, or
// both. The shipping price can only change while the buyer could still
// cancel; once the order ships the price is part of the agreed total.
// Canceling returns the reserved stock and degrades the buyer order to
// partial_accepted, exactly as a buyer cancellation would.
func (s *partnerService) UpdateShopOrder(ctx context.Context, ownerID, orderID int64, params UpdateShopOrderParams) (*domain.SellerOrderView, error) {
	if params.State == nil && params.ShippingPrice == nil {
		return nil, domain.Invalid("partner.update", "Nothing to update")
	}

	row, err := s.getShopOrderRow(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	var next domain.SellerOrderState
	if params.State != nil {
		next = domain.SellerOrderState(*params.State)
		if !next.Valid() || next == domain.SellerOrderBasket {
			return nil, domain.Invalid("partner.update", fmt.Sprintf("Unknown state %q", *params.State))
		}
	}
	if params.ShippingPrice != nil && *params.ShippingPrice < 0 {
		return nil, domain.Invalid("partner.update", "Shipping price cannot be negative")
	}

	var rolledBack bool
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		// The transition and price gates must hold on the locked row, not on
		// the unlocked read above: a cancel racing this update could
		// otherwise slip past the gate and release stock twice.
		locked, err := q.GetSellerOrderForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to lock seller order: %w", err)
		}
		cur := domain.SellerOrderState(locked.State)
		if cur == domain.SellerOrderBasket {
			return ErrOrderNotFound
		}
		if params.State != nil && !domain.CanTransition(cur, next) {
			return ErrIllegalTransition
		}
		if params.ShippingPrice != nil && !cur.CancelableByBuyer() {
			return ErrShippingPriceLocked
		}

		if params.ShippingPrice != nil {
			if err := q.SetSellerOrderShippingPrice(ctx, repository.SetSellerOrderShippingPriceParams{
				ID:            orderID,
				ShippingPrice: *params.ShippingPrice,
			}); err != nil {
				return fmt.Errorf("failed to update shipping price: %w", err)
			}
		}

		if params.State == nil {
			return nil
		}

		if next == domain.SellerOrderCanceled {
			items, err := q.ListOrderItems(ctx, orderID)
			if err != nil {
				return fmt.Errorf("failed to list order items: %w", err)
			}
			for _, item := range items {
				if _, err := ReleaseStock(ctx, q, item.OfferID, item.Quantity); err != nil {
					return err
				}
			}
			if err := q.SetBuyerOrderState(ctx, repository.SetBuyerOrderStateParams{
				ID:    locked.BuyerOrderID,
				State: string(domain.BuyerOrderPartialAccepted),
			}); err != nil {
				return fmt.Errorf("failed to downgrade buyer order: %w", err)
			}
			rolledBack = true
		}

		if err := q.SetSellerOrderState(ctx, repository.SetSellerOrderStateParams{
			ID:    orderID,
			State: string(next),
		}); err != nil {
			return fmt.Errorf("failed to update order state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if params.State != nil {
		s.metrics.StateTransitions.WithLabelValues(string(next)).Inc()
		if next == domain.SellerOrderCanceled {
			s.metrics.OrdersCanceled.WithLabelValues("partner").Inc()
		}
	}
	if rolledBack {
		s.metrics.InventoryRollbacks.Inc()
	}

	view, err := s.GetShopOrder(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	if params.State != nil {
		if err := s.sink.Notify(ctx, buyerOrderUpdated(row.BuyerEmail, row.BuyerOrderID, *view)); err != nil {
			s.metrics.NotificationsFailed.WithLabelValues(notifyOrderUpdated).Inc()
			s.logger.Error("failed to deliver order update notification",
				slog.Int64("seller_order_id", orderID),
				slog.String("error", err.Error()))
		} else {
			s.metrics.NotificationsSent.WithLabelValues(notifyOrderUpdated).Inc()
		}
	}
	return view, nil
}
