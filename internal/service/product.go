package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ProductService is the buyer-facing catalogue: offers from open shops with
// stock on hand.
type ProductService interface {
	ListOffers(ctx context.Context) ([]domain.OfferSnapshot, error)
	GetOffer(ctx context.Context, offerID int64) (*domain.OfferSnapshot, error)
}

type productService struct {
	store Store
}

// NewProductService creates a new ProductService instance.
func NewProductService(store Store) ProductService {
	return &productService{store: store}
}

func (s *productService) ListOffers(ctx context.Context) ([]domain.OfferSnapshot, error) {
	rows, err := s.store.ListOpenOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	offers := make([]domain.OfferSnapshot, len(rows))
	for i, row := range rows {
		offers[i] = offerSnapshot(row)
	}
	return offers, nil
}

// GetOffer returns a single offer. Offers of closed shops stay retrievable
// by id; only the listing hides them.
func (s *productService) GetOffer(ctx context.Context, offerID int64) (*domain.OfferSnapshot, error) {
	row, err := s.store.GetOfferDetail(ctx, offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	snapshot := offerSnapshot(row)
	return &snapshot, nil
}
