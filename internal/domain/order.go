package domain

import "time"

// SellerOrderState is the lifecycle state of one shop's slice of a buyer order.
type SellerOrderState string

const (
	SellerOrderBasket    SellerOrderState = "basket"
	SellerOrderNew       SellerOrderState = "new"
	SellerOrderConfirmed SellerOrderState = "confirmed"
	SellerOrderAssembled SellerOrderState = "assembled"
	SellerOrderSent      SellerOrderState = "sent"
	SellerOrderDelivered SellerOrderState = "delivered"
	SellerOrderCanceled  SellerOrderState = "canceled"
)

// Valid reports whether s is a known seller order state.
func (s SellerOrderState) Valid() bool {
	switch s {
	case SellerOrderBasket, SellerOrderNew, SellerOrderConfirmed,
		SellerOrderAssembled, SellerOrderSent, SellerOrderDelivered,
		SellerOrderCanceled:
		return true
	}
	return false
}

// CancelableByBuyer reports whether a buyer may still cancel an order in
// state s. Once an order is sent it is out of the shop's hands and can no
// longer be canceled by anyone.
func (s SellerOrderState) CancelableByBuyer() bool {
	switch s {
	case SellerOrderBasket, SellerOrderNew, SellerOrderConfirmed, SellerOrderAssembled:
		return true
	}
	return false
}

// CanTransition reports whether a partner may move a seller order from cur
// to next. "basket" is never a legal target: orders only leave that state
// through checkout. Canceling is allowed exactly while the buyer could still
// cancel; every other target only requires the order not to be finished.
func CanTransition(cur, next SellerOrderState) bool {
	if !next.Valid() || next == SellerOrderBasket {
		return false
	}
	if next == SellerOrderCanceled {
		return cur.CancelableByBuyer()
	}
	return cur != SellerOrderCanceled && cur != SellerOrderDelivered
}

// BuyerOrderState is the aggregate state spanning all seller orders of one
// checkout. It is "basket" until checkout, "accepted" when every sub-order
// satisfied inventory, and degrades to "partial_accepted" as soon as any
// sub-order is rolled back.
type BuyerOrderState string

const (
	BuyerOrderBasket          BuyerOrderState = "basket"
	BuyerOrderAccepted        BuyerOrderState = "accepted"
	BuyerOrderPartialAccepted BuyerOrderState = "partial_accepted"
)

// OrderLine is one product line within a seller order.
type OrderLine struct {
	ID               int64  `json:"id"`
	OfferID          int64  `json:"product_info"`
	ExternalID       int64  `json:"external_id"`
	ProductName      string `json:"product"`
	Quantity         int32  `json:"quantity"`
	PurchasePrice    int32  `json:"purchase_price"`
	PurchasePriceRRC int32  `json:"purchase_price_rrc"`

	// Status carries a human-readable shortage annotation on a rejected
	// checkout. It is never persisted.
	Status string `json:"status,omitempty"`
}

// Subtotal returns the line's cost at the frozen purchase price.
func (l OrderLine) Subtotal() int64 {
	return int64(l.Quantity) * int64(l.PurchasePrice)
}

// SellerOrderView is a read model of a seller order with its lines.
type SellerOrderView struct {
	ID            int64            `json:"id"`
	ShopID        int64            `json:"shop_id"`
	ShopName      string           `json:"shop"`
	State         SellerOrderState `json:"state"`
	ShippingPrice int32            `json:"shipping_price"`
	Items         []OrderLine      `json:"ordered_items"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
	Summary       int64            `json:"summary"`
}

// ComputeSummary returns the order total: item subtotals plus the frozen
// shipping price. Kept as a function over the lines rather than a stored
// column so it cannot drift.
func ComputeSummary(items []OrderLine, shippingPrice int32) int64 {
	total := int64(shippingPrice)
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// BuyerOrderView is a read model of a buyer order with all its seller orders.
// Contact and TotalSum are derived, never stored.
type BuyerOrderView struct {
	ID           int64             `json:"id"`
	State        BuyerOrderState   `json:"state"`
	CreatedAt    *time.Time        `json:"created_at,omitempty"`
	Contact      *Contact          `json:"contact,omitempty"`
	SellerOrders []SellerOrderView `json:"seller_orders"`
	TotalSum     int64             `json:"total_sum"`
}

// ComputeTotalSum sums the summaries of all non-canceled seller orders.
func ComputeTotalSum(orders []SellerOrderView) int64 {
	var total int64
	for _, so := range orders {
		if so.State == SellerOrderCanceled {
			continue
		}
		total += so.Summary
	}
	return total
}
