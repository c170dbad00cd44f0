package domain

// Shop is a partner's storefront. A closed shop keeps its placed orders but
// disappears from the buyer-facing catalogue.
type Shop struct {
	ID                int64  `json:"id"`
	OwnerID           int64  `json:"-"`
	Name              string `json:"name"`
	URL               string `json:"url,omitempty"`
	Email             string `json:"email"`
	IsOpen            bool   `json:"is_open"`
	BaseShippingPrice int32  `json:"base_shipping_price"`
}

// OfferSnapshot is a point-in-time read of one shop's listing of a product:
// the (product, shop, price, quantity) record the order core consumes from
// the catalogue. Immutable per read; availability is re-fetched for every
// inventory check.
type OfferSnapshot struct {
	ID          int64  `json:"id"`
	ExternalID  int64  `json:"external_id"`
	ShopID      int64  `json:"shop_id"`
	ShopName    string `json:"shop"`
	ShopIsOpen  bool   `json:"-"`
	ProductID   int64  `json:"-"`
	ProductName string `json:"product"`
	Quantity    int32  `json:"quantity"`
	Price       int32  `json:"price"`
	PriceRRC    int32  `json:"price_rrc"`
}
