package service

import (
	"fmt"
	"strings"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/notify"
)

// Notification kinds, used as metric labels.
const (
	notifyOrderPlaced       = "order_placed"
	notifyOrderConfirmation = "order_confirmation"
	notifyOrderCanceled     = "order_canceled"
	notifyOrderUpdated      = "order_updated"
)

func writeOrderLines(b *strings.Builder, items []domain.OrderLine) {
	for _, item := range items {
		fmt.Fprintf(b, "%s (%d): %d x %d = %d\n",
			item.ProductName, item.ExternalID, item.Quantity,
			item.PurchasePrice, item.Subtotal())
	}
}

// shopOrderPlaced notifies a shop that checkout placed a new order with it.
func shopOrderPlaced(shopEmail string, order domain.SellerOrderView, contact *domain.Contact) notify.Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "You have a new order %d.\n\n", order.ID)
	writeOrderLines(&b, order.Items)
	fmt.Fprintf(&b, "Shipping: %d\n", order.ShippingPrice)
	fmt.Fprintf(&b, "Total: %d\n", order.Summary)
	if contact != nil {
		fmt.Fprintf(&b, "\nDeliver to:\n%s\n", contact)
	}

	return notify.Notification{
		Recipient: shopEmail,
		Subject:   fmt.Sprintf("New order %d", order.ID),
		Body:      b.String(),
	}
}

// buyerOrderAccepted confirms a successful checkout to the buyer.
func buyerOrderAccepted(buyerEmail string, order domain.BuyerOrderView) notify.Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you, your order %d has been accepted.\n", order.ID)
	for _, so := range order.SellerOrders {
		fmt.Fprintf(&b, "\nOrder %d from %s:\n", so.ID, so.ShopName)
		writeOrderLines(&b, so.Items)
		fmt.Fprintf(&b, "Shipping: %d\n", so.ShippingPrice)
		fmt.Fprintf(&b, "Total: %d\n", so.Summary)
	}
	fmt.Fprintf(&b, "\nGrand total: %d\n", order.TotalSum)
	if order.Contact != nil {
		fmt.Fprintf(&b, "\nDeliver to:\n%s\n", order.Contact)
	}

	return notify.Notification{
		Recipient: buyerEmail,
		Subject:   fmt.Sprintf("Order: %d", order.ID),
		Body:      b.String(),
	}
}

// shopOrderCanceled notifies a shop that the buyer canceled an order.
func shopOrderCanceled(shopEmail string, order domain.SellerOrderView) notify.Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %d has been canceled by the buyer.\n\n", order.ID)
	b.WriteString("Items returned to stock:\n")
	writeOrderLines(&b, order.Items)

	return notify.Notification{
		Recipient: shopEmail,
		Subject:   fmt.Sprintf("Order %d canceled", order.ID),
		Body:      b.String(),
	}
}

// buyerOrderUpdated notifies the buyer that a shop changed one of their
// seller orders.
func buyerOrderUpdated(buyerEmail string, buyerOrderID int64, order domain.SellerOrderView) notify.Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "Changes in the order %d:\n", buyerOrderID)
	fmt.Fprintf(&b, "order %d from %s is now %q.\n", order.ID, order.ShopName, order.State)
	if order.State == domain.SellerOrderCanceled {
		b.WriteString("\nItems returned to stock:\n")
		writeOrderLines(&b, order.Items)
	}

	return notify.Notification{
		Recipient: buyerEmail,
		Subject:   fmt.Sprintf("Order: %d", buyerOrderID),
		Body:      b.String(),
	}
}
