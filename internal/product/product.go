package product

import "errors"

var ErrNotFound = errors.New("product not found")

// Product is a catalog entry. OriginalPrice above Price marks a sale item
// and drives the savings line on the cart summary.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Color         string  `json:"color,omitempty"`
	Size          string  `json:"size,omitempty"`
	Image         string  `json:"image,omitempty"`
}
