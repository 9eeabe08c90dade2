package checkout

import (
	"errors"

	"github.com/elegantshop/storefront-backend/internal/order"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidStage = errors.New("stage out of range")
	ErrNotAtReview  = errors.New("submission only allowed from the review stage")
)

// Stage is one step of the checkout flow. Stages are 1-indexed and only
// forward transitions are gated by validation.
type Stage int

const (
	StageCustomer Stage = iota + 1
	StageShipping
	StagePayment
	StageReview
)

// StageCount is the number of checkout stages.
const StageCount = 4

func (s Stage) valid() bool {
	return s >= StageCustomer && s <= StageReview
}

// PaymentMethod selections. Card is the only method that requires extra
// fields; the others are handled entirely by the provider.
const (
	PaymentCard   = "card"
	PaymentPaypal = "paypal"
	PaymentCOD    = "cod"
)

// CardDetails are collected only for card payments. The card number is
// stored with spaces stripped.
type CardDetails struct {
	Number string `json:"number,omitempty"`
	Name   string `json:"name,omitempty"`
	Expiry string `json:"expiry,omitempty"`
	CVV    string `json:"cvv,omitempty"`
}

// Payment is the captured payment-stage data.
type Payment struct {
	Method string      `json:"method"`
	Card   CardDetails `json:"card,omitempty"`
}

// State is the in-progress checkout draft for one session. Stage data,
// once validated, stays in place even when the user navigates backward.
type State struct {
	CurrentStage    Stage          `json:"currentStage"`
	Completed       map[Stage]bool `json:"completed"`
	Customer        order.Customer `json:"customer"`
	SavedAddressID  string         `json:"savedAddressID,omitempty"`
	ShippingAddress order.Address  `json:"shippingAddress"`
	ShippingMethod  string         `json:"shippingMethod"`
	Payment         Payment        `json:"payment"`
	AgreeTerms      bool           `json:"agreeTerms"`
}

func NewState() *State {
	return &State{
		CurrentStage:   StageCustomer,
		Completed:      make(map[Stage]bool),
		ShippingMethod: "standard",
		Payment:        Payment{Method: PaymentCard},
	}
}

// clone returns a deep copy so validation can run against a scratch state
// and commit only on success.
func (s *State) clone() *State {
	cp := *s
	cp.Completed = make(map[Stage]bool, len(s.Completed))
	for k, v := range s.Completed {
		cp.Completed[k] = v
	}
	return &cp
}
