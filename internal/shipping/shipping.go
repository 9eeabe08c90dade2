package shipping

import "errors"

var ErrUnknownMethod = errors.New("unknown shipping method")

// Method is one entry in the shipping catalog. Cost is a flat charge;
// the cart-level free-shipping rule may still zero it out.
type Method struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Cost     float64 `json:"cost"`
	Estimate string  `json:"estimate"`
}

// Catalog is the read-only set of selectable shipping methods.
type Catalog struct {
	methods []Method
}

func NewCatalog(methods ...Method) *Catalog {
	return &Catalog{methods: methods}
}

// DefaultCatalog mirrors the storefront's shipping options.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Method{ID: "standard", Name: "Standard Shipping", Cost: 0, Estimate: "5-7 business days"},
		Method{ID: "express", Name: "Express Shipping", Cost: 9.99, Estimate: "2-3 business days"},
		Method{ID: "overnight", Name: "Overnight Shipping", Cost: 24.99, Estimate: "next business day"},
	)
}

func (c *Catalog) List() []Method {
	out := make([]Method, len(c.methods))
	copy(out, c.methods)
	return out
}

func (c *Catalog) Get(id string) (Method, error) {
	for _, m := range c.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return Method{}, ErrUnknownMethod
}
