package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/elegantshop/storefront-backend/internal/coupon"
	"github.com/elegantshop/storefront-backend/internal/product"
	"github.com/elegantshop/storefront-backend/internal/shipping"
	"github.com/elegantshop/storefront-backend/internal/storage"
)

// QuantityAction is a single-step quantity change from the +/- controls.
type QuantityAction string

const (
	ActionIncrease QuantityAction = "increase"
	ActionDecrease QuantityAction = "decrease"
)

// Service owns the per-session carts. Carts live in memory; the storage
// collaborator is written after every mutation best-effort and consulted
// once per session to restore previous state. Storage failures are logged
// and never surfaced to the caller.
type Service struct {
	mu       sync.Mutex
	carts    map[string]*Cart
	engine   *Engine
	registry *coupon.Registry
	catalog  *shipping.Catalog
	products product.ServiceInterface
	store    storage.Store
}

func NewService(engine *Engine, registry *coupon.Registry, catalog *shipping.Catalog, products product.ServiceInterface, store storage.Store) *Service {
	return &Service{
		carts:    make(map[string]*Cart),
		engine:   engine,
		registry: registry,
		catalog:  catalog,
		products: products,
		store:    store,
	}
}

// Engine exposes the pricing engine so the checkout flow can reuse it.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Get returns a snapshot of the session's cart and its rounded breakdown.
func (s *Service) Get(sessionID string) (Cart, Breakdown) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	return *c, s.engine.Summarize(c).Rounded()
}

// AddItem resolves a product from the catalog and merges it into the
// cart. Quantities accumulate and clamp to the engine's maximum.
func (s *Service) AddItem(sessionID string, productID, qty int) (Breakdown, error) {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return Breakdown{}, err
	}
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	if it := c.findItem(p.ID); it != nil {
		it.Quantity = clamp(it.Quantity+qty, 1, s.engine.MaxQuantity)
	} else {
		c.Items = append(c.Items, LineItem{
			ID:            p.ID,
			Name:          p.Name,
			UnitPrice:     p.Price,
			OriginalPrice: p.OriginalPrice,
			Quantity:      clamp(qty, 1, s.engine.MaxQuantity),
			Color:         p.Color,
			Size:          p.Size,
			Image:         p.Image,
		})
	}
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded(), nil
}

// SetQuantity handles free-form quantity input: out-of-range values are
// clamped silently, an unknown item id is a hard failure.
func (s *Service) SetQuantity(sessionID string, itemID, qty int) (Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	it := c.findItem(itemID)
	if it == nil {
		return Breakdown{}, ErrItemNotFound
	}
	it.Quantity = clamp(qty, 1, s.engine.MaxQuantity)
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded(), nil
}

// StepQuantity handles the +/- buttons. Increasing past the maximum is
// rejected with ErrQuantityLimit so the caller can tell the user;
// decreasing at 1 is a silent no-op.
func (s *Service) StepQuantity(sessionID string, itemID int, action QuantityAction) (Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	it := c.findItem(itemID)
	if it == nil {
		return Breakdown{}, ErrItemNotFound
	}

	switch action {
	case ActionIncrease:
		if it.Quantity >= s.engine.MaxQuantity {
			return Breakdown{}, ErrQuantityLimit
		}
		it.Quantity++
	case ActionDecrease:
		if it.Quantity > 1 {
			it.Quantity--
		}
	default:
		return Breakdown{}, ErrItemNotFound
	}

	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded(), nil
}

// RemoveItem deletes a line item. Removing an absent id is a no-op.
func (s *Service) RemoveItem(sessionID string, itemID int) Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded()
}

// Clear empties the cart and drops any coupon. Idempotent.
func (s *Service) Clear(sessionID string) Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	c.Items = []LineItem{}
	c.Coupon = nil
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded()
}

// ApplyCoupon validates a code against the registry. A hit replaces any
// active coupon; a miss leaves the existing coupon untouched.
func (s *Service) ApplyCoupon(sessionID, code string) (coupon.Coupon, Breakdown, error) {
	cp, err := s.registry.Lookup(code)
	if err != nil {
		return coupon.Coupon{}, Breakdown{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	c.Coupon = &cp
	s.persistLocked(sessionID, c)
	return cp, s.engine.Summarize(c).Rounded(), nil
}

// RemoveCoupon clears the active coupon unconditionally.
func (s *Service) RemoveCoupon(sessionID string) Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	c.Coupon = nil
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded()
}

// SetShippingMethod selects a flat-cost method from the catalog.
func (s *Service) SetShippingMethod(sessionID, methodID string) (Breakdown, error) {
	m, err := s.catalog.Get(methodID)
	if err != nil {
		return Breakdown{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionID)
	c.ShippingCost = m.Cost
	s.persistLocked(sessionID, c)
	return s.engine.Summarize(c).Rounded(), nil
}

// cartLocked returns the session's cart, restoring it from storage on
// first access. Callers must hold s.mu.
func (s *Service) cartLocked(sessionID string) *Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c := NewCart()
	if raw, err := s.store.Load(cartKey(sessionID)); err == nil {
		restored := NewCart()
		if err := json.Unmarshal(raw, restored); err == nil {
			c = restored
			if c.Items == nil {
				c.Items = []LineItem{}
			}
		} else {
			log.Printf("warning: could not restore cart for session %s: %v", sessionID, err)
		}
	}
	s.carts[sessionID] = c
	return c
}

func (s *Service) persistLocked(sessionID string, c *Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		log.Printf("warning: could not serialize cart for session %s: %v", sessionID, err)
		return
	}
	if err := s.store.Save(cartKey(sessionID), raw); err != nil {
		log.Printf("warning: could not save cart for session %s: %v", sessionID, err)
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
