package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Type      string
}

type Contact struct {
	ID        int64
	UserID    int64
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
	IsDeleted bool
}

type Shop struct {
	ID                int64
	OwnerID           int64
	Name              string
	Url               pgtype.Text
	Email             string
	IsOpen            bool
	BaseShippingPrice int32
}

type ProductOffer struct {
	ID         int64
	ShopID     int64
	ProductID  int64
	ExternalID int64
	Quantity   int32
	Price      int32
	PriceRrc   int32
}

type BuyerOrder struct {
	ID        int64
	UserID    int64
	State     string
	CreatedAt pgtype.Timestamptz
}

type SellerOrder struct {
	ID            int64
	BuyerOrderID  int64
	ShopID        int64
	State         string
	ContactID     pgtype.Int8
	ShippingPrice int32
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type OrderItem struct {
	ID               int64
	SellerOrderID    int64
	OfferID          int64
	Quantity         int32
	PurchasePrice    int32
	PurchasePriceRrc int32
}

// OfferDetailRow is a product offer joined with its product and shop.
type OfferDetailRow struct {
	ID                int64
	ShopID            int64
	ProductID         int64
	ExternalID        int64
	Quantity          int32
	Price             int32
	PriceRrc          int32
	ProductName       string
	ShopName          string
	ShopEmail         string
	ShopIsOpen        bool
	BaseShippingPrice int32
}

// SellerOrderDetailRow is a seller order joined with its shop and buyer.
type SellerOrderDetailRow struct {
	ID            int64
	BuyerOrderID  int64
	ShopID        int64
	State         string
	ContactID     pgtype.Int8
	ShippingPrice int32
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
	ShopName      string
	ShopEmail     string
	BuyerID       int64
	BuyerEmail    string
	BuyerState    string
}

// OrderItemDetailRow is an order item joined with its offer and product.
// OfferQuantity is the offer's current availability, not the ordered amount.
type OrderItemDetailRow struct {
	ID               int64
	SellerOrderID    int64
	OfferID          int64
	Quantity         int32
	PurchasePrice    int32
	PurchasePriceRrc int32
	OfferExternalID  int64
	OfferQuantity    int32
	ProductName      string
}
