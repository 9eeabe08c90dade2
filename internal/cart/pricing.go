package cart

import (
	"math"

	"github.com/elegantshop/storefront-backend/internal/coupon"
)

// Engine computes the financial breakdown of a cart. All methods are pure:
// they read their inputs and return derived values without touching the
// cart, so callers can recompute after every mutation.
type Engine struct {
	// TaxRate is a fraction applied to the discounted base.
	TaxRate float64
	// FreeShippingThreshold zeroes the shipping cost for subtotals at or
	// above it. Zero disables the rule.
	FreeShippingThreshold float64
	// MaxQuantity bounds per-item quantity.
	MaxQuantity int
}

// NewEngine applies the storefront defaults: 10% tax, free shipping at
// $50, at most 10 units per line.
func NewEngine() *Engine {
	return &Engine{TaxRate: 0.10, FreeShippingThreshold: 50, MaxQuantity: 10}
}

// Breakdown is the derived summary handed to the renderer after every
// mutating operation. Total is the single source of truth for the amount
// due; Savings is advisory only.
type Breakdown struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Shipping  float64 `json:"shipping"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	Savings   float64 `json:"savings"`
	ItemCount int     `json:"itemCount"`
}

// Subtotal sums unit price times quantity over all items.
func (e *Engine) Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// Savings sums (originalPrice - unitPrice) * quantity over items that are
// on sale. An original price at or below the unit price contributes
// nothing, so the result is never negative.
func (e *Engine) Savings(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		if it.OriginalPrice > it.UnitPrice {
			sum += (it.OriginalPrice - it.UnitPrice) * float64(it.Quantity)
		}
	}
	return sum
}

// Discount resolves the coupon against the subtotal. Fixed discounts are
// capped at the subtotal so the discounted base can never go negative.
func (e *Engine) Discount(subtotal float64, cp *coupon.Coupon) float64 {
	if cp == nil {
		return 0
	}
	switch cp.Kind {
	case coupon.Percentage:
		return subtotal * cp.Value
	case coupon.Fixed:
		return math.Min(cp.Value, subtotal)
	}
	return 0
}

// Tax applies the rate to the discounted base, never the raw subtotal.
func (e *Engine) Tax(subtotal, discount float64) float64 {
	return (subtotal - discount) * e.TaxRate
}

// Shipping returns the selected method's flat cost unless the subtotal
// qualifies for free shipping.
func (e *Engine) Shipping(subtotal, methodCost float64) float64 {
	if e.FreeShippingThreshold > 0 && subtotal >= e.FreeShippingThreshold {
		return 0
	}
	return methodCost
}

// Total is the amount due.
func (e *Engine) Total(subtotal, discount, shipping, tax float64) float64 {
	return subtotal - discount + shipping + tax
}

// TotalSavings combines sale savings with the coupon discount for the
// "you saved $X" display.
func (e *Engine) TotalSavings(savings, discount float64) float64 {
	return savings + discount
}

// Summarize recomputes the whole breakdown for a cart.
func (e *Engine) Summarize(c *Cart) Breakdown {
	subtotal := e.Subtotal(c.Items)
	discount := e.Discount(subtotal, c.Coupon)
	shipping := e.Shipping(subtotal, c.ShippingCost)
	tax := e.Tax(subtotal, discount)
	return Breakdown{
		Subtotal:  subtotal,
		Discount:  discount,
		Shipping:  shipping,
		Tax:       tax,
		Total:     e.Total(subtotal, discount, shipping, tax),
		Savings:   e.TotalSavings(e.Savings(c.Items), discount),
		ItemCount: c.ItemCount(),
	}
}

// Rounded applies the display policy: two decimals, half away from zero.
func (b Breakdown) Rounded() Breakdown {
	b.Subtotal = round2(b.Subtotal)
	b.Discount = round2(b.Discount)
	b.Shipping = round2(b.Shipping)
	b.Tax = round2(b.Tax)
	b.Total = round2(b.Total)
	b.Savings = round2(b.Savings)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
