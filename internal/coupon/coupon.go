package coupon

import (
	"errors"
	"strings"
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

// Kind distinguishes how a coupon's value is interpreted.
type Kind string

const (
	// Percentage coupons hold a fraction in (0,1], e.g. 0.10 for 10% off.
	Percentage Kind = "percentage"
	// Fixed coupons hold an absolute amount off the subtotal.
	Fixed Kind = "fixed"
)

// Coupon is a resolved discount code. At most one coupon is active on a
// cart; applying a new one replaces it.
type Coupon struct {
	Code  string  `json:"code"`
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
}

// Registry is a read-only table of known codes keyed by their
// normalized form.
type Registry struct {
	codes map[string]Coupon
}

// NewRegistry builds a registry from the given coupons, normalizing
// every code.
func NewRegistry(coupons ...Coupon) *Registry {
	r := &Registry{codes: make(map[string]Coupon, len(coupons))}
	for _, cp := range coupons {
		cp.Code = Normalize(cp.Code)
		r.codes[cp.Code] = cp
	}
	return r
}

// DefaultRegistry returns the stock promotion table: two percentage codes
// and one flat-amount code.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Coupon{Code: "SAVE10", Kind: Percentage, Value: 0.10},
		Coupon{Code: "SAVE20", Kind: Percentage, Value: 0.20},
		Coupon{Code: "FLAT50", Kind: Fixed, Value: 50},
	)
}

// Normalize trims surrounding whitespace and uppercases a user-entered
// code so lookups are case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup resolves a raw user-entered code. Unknown or blank codes return
// ErrInvalidCoupon.
func (r *Registry) Lookup(code string) (Coupon, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return Coupon{}, ErrInvalidCoupon
	}
	cp, ok := r.codes[normalized]
	if !ok {
		return Coupon{}, ErrInvalidCoupon
	}
	return cp, nil
}
