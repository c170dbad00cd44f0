package service

import (
	"fmt"
	"strings"

	"github.com/dukerupert/vanir/internal/domain"
)

// Not-found errors - use domain.ENOTFOUND
var (
	ErrOfferNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Offer not found")
	ErrContactNotFound = domain.Errorf(domain.ENOTFOUND, "", "Contact not found")
	ErrBasketNotFound  = domain.Errorf(domain.ENOTFOUND, "", "Basket not found")
	ErrOrderNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrShopNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Shop not found")
)

// Validation errors - use domain.EINVALID
var (
	ErrInvalidQuantity = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
	ErrBadContact      = domain.Errorf(domain.EINVALID, "", "Contact id must be a positive integer")
	ErrEmptyBasket     = domain.Errorf(domain.EINVALID, "", "Basket is empty")
)

// State errors
var (
	ErrNotCancelable       = domain.Errorf(domain.ECONFLICT, "", "Order can no longer be canceled")
	ErrIllegalTransition   = domain.Errorf(domain.ECONFLICT, "", "Illegal order state transition")
	ErrShippingPriceLocked = domain.Errorf(domain.ECONFLICT, "", "Shipping price can only change before the order ships")
	ErrContactInUse        = domain.Errorf(domain.ECONFLICT, "", "Contact is referenced by existing orders")
)

// UnknownItemsError reports a basket removal referencing offer ids with no
// line in the caller's basket. The whole removal is rejected, nothing is
// deleted.
func UnknownItemsError(ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return domain.Errorf(domain.EINVALID, "", "Unknown ids %s", strings.Join(parts, ", "))
}
