package domain

// UserType distinguishes buyers from sellers (partners).
type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
)

// User is the opaque authenticated identity handed to the order core.
// Registration, confirmation and password flows live outside this service.
type User struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Type      UserType `json:"type"`
}
