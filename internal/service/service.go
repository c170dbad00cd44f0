package service

import (
	"context"
	"errors"
	"time"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Store is the persistence surface services depend on: the full query set
// plus transactional execution. repository.Store satisfies it; tests supply
// an in-memory implementation whose ExecTx simply calls fn on itself.
type Store interface {
	repository.Querier
	ExecTx(ctx context.Context, fn func(repository.Querier) error) error
}

func timestamptzNow() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func orderLines(items []repository.OrderItemDetailRow) []domain.OrderLine {
	lines := make([]domain.OrderLine, len(items))
	for i, item := range items {
		lines[i] = domain.OrderLine{
			ID:               item.ID,
			OfferID:          item.OfferID,
			ExternalID:       item.OfferExternalID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			PurchasePrice:    item.PurchasePrice,
			PurchasePriceRRC: item.PurchasePriceRrc,
		}
	}
	return lines
}

// sellerOrderView assembles the read model for one seller order, loading its
// lines through q.
func sellerOrderView(ctx context.Context, q repository.Querier, row repository.SellerOrderDetailRow) (domain.SellerOrderView, error) {
	items, err := q.ListOrderItems(ctx, row.ID)
	if err != nil {
		return domain.SellerOrderView{}, err
	}

	lines := orderLines(items)
	return domain.SellerOrderView{
		ID:            row.ID,
		ShopID:        row.ShopID,
		ShopName:      row.ShopName,
		State:         domain.SellerOrderState(row.State),
		ShippingPrice: row.ShippingPrice,
		Items:         lines,
		CreatedAt:     timePtr(row.CreatedAt),
		UpdatedAt:     timePtr(row.UpdatedAt),
		Summary:       domain.ComputeSummary(lines, row.ShippingPrice),
	}, nil
}

// buyerOrderView assembles the read model for a whole buyer order. The
// contact is derived from the first seller order carrying one; all seller
// orders of a checkout share the same contact.
func buyerOrderView(ctx context.Context, q repository.Querier, order repository.BuyerOrder) (*domain.BuyerOrderView, error) {
	rows, err := q.ListSellerOrders(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.SellerOrderView, 0, len(rows))
	var contact *domain.Contact
	for _, row := range rows {
		view, err := sellerOrderView(ctx, q, row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)

		if contact == nil && row.ContactID.Valid {
			c, err := q.GetContactByID(ctx, row.ContactID.Int64)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				return nil, err
			}
			contact = contactView(c)
		}
	}

	return &domain.BuyerOrderView{
		ID:           order.ID,
		State:        domain.BuyerOrderState(order.State),
		CreatedAt:    timePtr(order.CreatedAt),
		Contact:      contact,
		SellerOrders: views,
		TotalSum:     domain.ComputeTotalSum(views),
	}, nil
}

func contactView(c repository.Contact) *domain.Contact {
	return &domain.Contact{
		ID:        c.ID,
		UserID:    c.UserID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
}

func offerSnapshot(row repository.OfferDetailRow) domain.OfferSnapshot {
	return domain.OfferSnapshot{
		ID:          row.ID,
		ExternalID:  row.ExternalID,
		ShopID:      row.ShopID,
		ShopName:    row.ShopName,
		ShopIsOpen:  row.ShopIsOpen,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Quantity:    row.Quantity,
		Price:       row.Price,
		PriceRRC:    row.PriceRrc,
	}
}
