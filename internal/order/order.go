package order

import (
	"github.com/elegantshop/storefront-backend/internal/cart"
)

// Customer identifies who placed the order.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Address is a shipping destination.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Order is the immutable record produced by a successful checkout
// submission: a snapshot of customer, destination, payment selection,
// line items and the price breakdown at the moment of purchase.
type Order struct {
	ID              string          `json:"orderID"`
	Customer        Customer        `json:"customer"`
	ShippingAddress Address         `json:"shippingAddress"`
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	Items           []cart.LineItem `json:"items"`
	Summary         cart.Breakdown  `json:"summary"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}
