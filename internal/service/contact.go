package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
)

// ContactService manages a buyer's delivery contacts.
type ContactService interface {
	List(ctx context.Context, userID int64) ([]domain.Contact, error)
	Create(ctx context.Context, userID int64, params ContactParams) (*domain.Contact, error)
	Update(ctx context.Context, userID, contactID int64, params ContactParams) (*domain.Contact, error)
	Delete(ctx context.Context, userID, contactID int64) error
}

// ContactParams is the writable contact shape shared by create and update.
type ContactParams struct {
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" validate:"required"`
}

type contactService struct {
	store Store
}

// NewContactService creates a new ContactService instance.
func NewContactService(store Store) ContactService {
	return &contactService{store: store}
}

func (s *contactService) List(ctx context.Context, userID int64) ([]domain.Contact, error) {
	rows, err := s.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts := make([]domain.Contact, len(rows))
	for i, row := range rows {
		contacts[i] = *contactView(row)
	}
	return contacts, nil
}

func (s *contactService) Create(ctx context.Context, userID int64, params ContactParams) (*domain.Contact, error) {
	row, err := s.store.CreateContact(ctx, repository.CreateContactParams{
		UserID:    userID,
		City:      params.City,
		Street:    params.Street,
		House:     params.House,
		Structure: params.Structure,
		Building:  params.Building,
		Apartment: params.Apartment,
		Phone:     params.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contactView(row), nil
}

// Update rewrites a contact. Contacts referenced by placed orders are frozen
// so the address on an order never changes under the shop; edit attempts are
// refused. Only the owner's contacts resolve at all, so a foreign id reads
// as not found rather than leaking that a frozen contact exists.
func (s *contactService) Update(ctx context.Context, userID, contactID int64, params ContactParams) (*domain.Contact, error) {
	var row repository.Contact
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetContact(ctx, repository.GetContactParams{ID: contactID, UserID: userID}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrContactNotFound
			}
			return fmt.Errorf("failed to get contact: %w", err)
		}

		count, err := q.CountContactOrders(ctx, contactID)
		if err != nil {
			return fmt.Errorf("failed to count contact orders: %w", err)
		}
		if count > 0 {
			return ErrContactInUse
		}

		row, err = q.UpdateContact(ctx, repository.UpdateContactParams{
			ID:        contactID,
			UserID:    userID,
			City:      params.City,
			Street:    params.Street,
			House:     params.House,
			Structure: params.Structure,
			Building:  params.Building,
			Apartment: params.Apartment,
			Phone:     params.Phone,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrContactNotFound
			}
			return fmt.Errorf("failed to update contact: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contactView(row), nil
}

// Delete soft-deletes a contact. Orders keep their frozen reference; the
// contact merely disappears from the buyer's list and from future checkouts.
func (s *contactService) Delete(ctx context.Context, userID, contactID int64) error {
	affected, err := s.store.SoftDeleteContact(ctx, repository.SoftDeleteContactParams{
		ID:     contactID,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}
