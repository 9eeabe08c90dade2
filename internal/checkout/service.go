package checkout

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elegantshop/storefront-backend/internal/cart"
	"github.com/elegantshop/storefront-backend/internal/order"
	"github.com/elegantshop/storefront-backend/internal/storage"
)

// AdvanceInput carries the form data for the stage being validated. Only
// the fields relevant to the current stage are consulted.
type AdvanceInput struct {
	Customer       *order.Customer `json:"customer,omitempty"`
	SavedAddressID string          `json:"savedAddressID,omitempty"`
	Address        *order.Address  `json:"address,omitempty"`
	ShippingMethod string          `json:"shippingMethod,omitempty"`
	Payment        *Payment        `json:"payment,omitempty"`
	AgreeTerms     *bool           `json:"agreeTerms,omitempty"`
}

// Service is the checkout stage controller. Drafts live in memory keyed
// by session; the storage collaborator persists them best-effort after
// every transition and restores them on first access, like the cart.
type Service struct {
	mu     sync.Mutex
	drafts map[string]*State
	carts  *cart.Service
	orders order.Repository
	store  storage.Store
}

func NewService(carts *cart.Service, orders order.Repository, store storage.Store) *Service {
	return &Service{
		drafts: make(map[string]*State),
		carts:  carts,
		orders: orders,
		store:  store,
	}
}

// Start begins (or resumes) a checkout draft. An empty cart cannot enter
// checkout.
func (s *Service) Start(sessionID string) (State, error) {
	snapshot, _ := s.carts.Get(sessionID)
	if len(snapshot.Items) == 0 {
		return State{}, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.draftLocked(sessionID)
	s.persistLocked(sessionID, st)
	return *st.clone(), nil
}

// Get returns the current draft without creating one.
func (s *Service) Get(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.draftLocked(sessionID).clone()
}

// Advance validates the current stage against the supplied input. On
// success the current stage is marked completed, the stage data is
// captured and the draft moves to the target stage. On failure the draft
// is untouched and the specific reason is returned.
func (s *Service) Advance(sessionID string, target Stage, input AdvanceInput) (State, error) {
	if !target.valid() {
		return State{}, ErrInvalidStage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.draftLocked(sessionID)

	// validate against a scratch copy so a failure leaves the draft as-is
	next := st.clone()
	next.apply(input)
	if verr := next.validate(st.CurrentStage); verr != nil {
		return State{}, verr
	}

	// shipping selection also reprices the cart
	if st.CurrentStage == StageShipping && next.ShippingMethod != "" {
		if _, err := s.carts.SetShippingMethod(sessionID, next.ShippingMethod); err != nil {
			return State{}, err
		}
	}

	next.Completed[st.CurrentStage] = true
	next.CurrentStage = target
	s.drafts[sessionID] = next
	s.persistLocked(sessionID, next)
	return *next.clone(), nil
}

// Retreat navigates backward without validation. Captured stage data is
// retained.
func (s *Service) Retreat(sessionID string, target Stage) (State, error) {
	if !target.valid() {
		return State{}, ErrInvalidStage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.draftLocked(sessionID)
	st.CurrentStage = target
	s.persistLocked(sessionID, st)
	return *st.clone(), nil
}

// Submit finalizes the order. It is permitted only from the review stage
// with terms accepted and a non-empty cart; any failure leaves every
// piece of state untouched. On success the draft and the cart are
// cleared and the immutable order record is returned.
func (s *Service) Submit(sessionID string) (order.Order, error) {
	s.mu.Lock()
	st := s.draftLocked(sessionID)
	if st.CurrentStage != StageReview {
		s.mu.Unlock()
		return order.Order{}, ErrNotAtReview
	}
	if verr := st.validateReview(); verr != nil {
		s.mu.Unlock()
		return order.Order{}, verr
	}
	final := st.clone()
	s.mu.Unlock()

	snapshot, summary := s.carts.Get(sessionID)
	if len(snapshot.Items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	ord := order.Order{
		ID:              "ORD-" + uuid.NewString(),
		Customer:        final.Customer,
		ShippingAddress: final.ShippingAddress,
		ShippingMethod:  final.ShippingMethod,
		PaymentMethod:   final.Payment.Method,
		Items:           snapshot.Items,
		Summary:         summary,
		Status:          "confirmed",
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.orders.Create(ord)
	if err != nil {
		return order.Order{}, err
	}

	// best-effort side effects: last-order record, then teardown
	if raw, err := json.Marshal(created); err == nil {
		if err := s.store.Save(order.LastOrderKey(sessionID), raw); err != nil {
			log.Printf("warning: could not save last order for session %s: %v", sessionID, err)
		}
	}

	s.mu.Lock()
	delete(s.drafts, sessionID)
	if err := s.store.Delete(draftKey(sessionID)); err != nil {
		log.Printf("warning: could not delete checkout draft for session %s: %v", sessionID, err)
	}
	s.mu.Unlock()

	s.carts.Clear(sessionID)
	return created, nil
}

// apply merges stage input into the state. Card numbers are stored with
// spaces stripped, names and emails trimmed.
func (s *State) apply(in AdvanceInput) {
	if in.Customer != nil {
		c := *in.Customer
		c.FirstName = strings.TrimSpace(c.FirstName)
		c.LastName = strings.TrimSpace(c.LastName)
		c.Email = strings.TrimSpace(c.Email)
		c.Phone = strings.TrimSpace(c.Phone)
		s.Customer = c
	}
	if in.SavedAddressID != "" {
		s.SavedAddressID = in.SavedAddressID
	}
	if in.Address != nil {
		s.ShippingAddress = *in.Address
		if s.ShippingAddress.Country == "" {
			s.ShippingAddress.Country = "US"
		}
	}
	if in.ShippingMethod != "" {
		s.ShippingMethod = in.ShippingMethod
	}
	if in.Payment != nil {
		p := *in.Payment
		p.Card.Number = strings.ReplaceAll(p.Card.Number, " ", "")
		s.Payment = p
	}
	if in.AgreeTerms != nil {
		s.AgreeTerms = *in.AgreeTerms
	}
}

func (s *Service) draftLocked(sessionID string) *State {
	if st, ok := s.drafts[sessionID]; ok {
		return st
	}
	st := NewState()
	if raw, err := s.store.Load(draftKey(sessionID)); err == nil {
		restored := NewState()
		if err := json.Unmarshal(raw, restored); err == nil {
			st = restored
			if st.Completed == nil {
				st.Completed = make(map[Stage]bool)
			}
			if !st.CurrentStage.valid() {
				st.CurrentStage = StageCustomer
			}
		} else {
			log.Printf("warning: could not restore checkout draft for session %s: %v", sessionID, err)
		}
	}
	s.drafts[sessionID] = st
	return st
}

func (s *Service) persistLocked(sessionID string, st *State) {
	raw, err := json.Marshal(st)
	if err != nil {
		log.Printf("warning: could not serialize checkout draft for session %s: %v", sessionID, err)
		return
	}
	if err := s.store.Save(draftKey(sessionID), raw); err != nil {
		log.Printf("warning: could not save checkout draft for session %s: %v", sessionID, err)
	}
}

func draftKey(sessionID string) string {
	return "checkout:" + sessionID
}
