package cart

import (
	"errors"

	"github.com/elegantshop/storefront-backend/internal/coupon"
)

var (
	ErrItemNotFound  = errors.New("item not found in cart")
	ErrQuantityLimit = errors.New("maximum quantity reached")
)

// LineItem is one product entry in the cart. OriginalPrice is the
// pre-discount reference price; zero means the item is not on sale.
type LineItem struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Quantity      int     `json:"quantity"`
	Color         string  `json:"color,omitempty"`
	Size          string  `json:"size,omitempty"`
	Image         string  `json:"image,omitempty"`
}

// Cart is the in-memory order model for one session: an ordered list of
// line items, at most one coupon and the selected shipping cost. Derived
// amounts are never stored here; the Engine recomputes them on demand.
type Cart struct {
	Items        []LineItem     `json:"items"`
	Coupon       *coupon.Coupon `json:"coupon,omitempty"`
	ShippingCost float64        `json:"shippingCost"`
}

func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

// ItemCount is the total unit count across all line items.
func (c *Cart) ItemCount() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) findItem(itemID int) *LineItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}
