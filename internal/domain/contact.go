package domain

import (
	"fmt"
	"strings"
)

// Contact is a buyer's delivery address. Contacts referenced by placed
// orders are frozen: they can be soft-deleted but not edited.
type Contact struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"-"`
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house,omitempty"`
	Structure string `json:"structure,omitempty"`
	Building  string `json:"building,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Phone     string `json:"phone"`
}

// String renders the contact as a delivery address block for notifications.
func (c Contact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\nStreet: %s", c.City, c.Street)
	for _, part := range []struct{ label, value string }{
		{"House", c.House},
		{"Structure", c.Structure},
		{"Building", c.Building},
		{"Apartment", c.Apartment},
	} {
		if part.value != "" {
			fmt.Fprintf(&b, "\n%s: %s", part.label, part.value)
		}
	}
	fmt.Fprintf(&b, "\nPhone: %s", c.Phone)
	return b.String()
}
