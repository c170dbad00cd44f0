package repository

import (
	"context"
)

// Querier is the interface over all query methods. Services depend on it so
// tests can substitute an in-memory implementation.
type Querier interface {
	// Users and contacts
	GetUserByToken(ctx context.Context, key string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetContact(ctx context.Context, arg GetContactParams) (Contact, error)
	GetContactByID(ctx context.Context, id int64) (Contact, error)
	ListContacts(ctx context.Context, userID int64) ([]Contact, error)
	CreateContact(ctx context.Context, arg CreateContactParams) (Contact, error)
	UpdateContact(ctx context.Context, arg UpdateContactParams) (Contact, error)
	SoftDeleteContact(ctx context.Context, arg SoftDeleteContactParams) (int64, error)
	CountContactOrders(ctx context.Context, contactID int64) (int64, error)

	// Shops
	GetShopByOwnerID(ctx context.Context, ownerID int64) (Shop, error)
	SetShopOpen(ctx context.Context, arg SetShopOpenParams) (Shop, error)

	// Catalogue offers and inventory
	GetOfferDetail(ctx context.Context, id int64) (OfferDetailRow, error)
	ListOfferDetails(ctx context.Context, ids []int64) ([]OfferDetailRow, error)
	ListOpenOffers(ctx context.Context) ([]OfferDetailRow, error)
	ListShopOffers(ctx context.Context, shopID int64) ([]OfferDetailRow, error)
	GetOfferForUpdate(ctx context.Context, id int64) (ProductOffer, error)
	UpdateOfferQuantity(ctx context.Context, arg UpdateOfferQuantityParams) error

	// Buyer orders
	GetBasketByUserID(ctx context.Context, userID int64) (BuyerOrder, error)
	CreateBasket(ctx context.Context, userID int64) (BuyerOrder, error)
	GetBuyerOrderForUser(ctx context.Context, arg GetBuyerOrderForUserParams) (BuyerOrder, error)
	ListBuyerOrders(ctx context.Context, userID int64) ([]BuyerOrder, error)
	AcceptBuyerOrder(ctx context.Context, arg AcceptBuyerOrderParams) error
	SetBuyerOrderState(ctx context.Context, arg SetBuyerOrderStateParams) error
	DeleteBuyerOrder(ctx context.Context, id int64) error

	// Seller orders
	GetSellerOrderDetail(ctx context.Context, id int64) (SellerOrderDetailRow, error)
	GetSellerOrderForUpdate(ctx context.Context, id int64) (SellerOrder, error)
	ListSellerOrders(ctx context.Context, buyerOrderID int64) ([]SellerOrderDetailRow, error)
	ListShopOrders(ctx context.Context, shopID int64) ([]SellerOrderDetailRow, error)
	GetBasketSellerOrder(ctx context.Context, arg GetBasketSellerOrderParams) (SellerOrder, error)
	CreateSellerOrder(ctx context.Context, arg CreateSellerOrderParams) (SellerOrder, error)
	PlaceSellerOrder(ctx context.Context, arg PlaceSellerOrderParams) error
	SetSellerOrderState(ctx context.Context, arg SetSellerOrderStateParams) error
	SetSellerOrderShippingPrice(ctx context.Context, arg SetSellerOrderShippingPriceParams) error
	DeleteSellerOrders(ctx context.Context, ids []int64) error
	CountSellerOrders(ctx context.Context, buyerOrderID int64) (int64, error)

	// Order items
	ListOrderItems(ctx context.Context, sellerOrderID int64) ([]OrderItemDetailRow, error)
	UpsertOrderItem(ctx context.Context, arg UpsertOrderItemParams) (OrderItem, error)
	DeleteOrderItems(ctx context.Context, ids []int64) error
}

var _ Querier = (*Queries)(nil)
