package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegantshop/storefront-backend/internal/cart"
	"github.com/elegantshop/storefront-backend/internal/coupon"
	"github.com/elegantshop/storefront-backend/internal/order"
	"github.com/elegantshop/storefront-backend/internal/product"
	"github.com/elegantshop/storefront-backend/internal/shipping"
	"github.com/elegantshop/storefront-backend/internal/storage"
)

func newTestEnv(t *testing.T) (*Service, *cart.Service, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	products := product.NewService(product.NewInMemoryRepository(product.DefaultCatalog()))
	carts := cart.NewService(cart.NewEngine(), coupon.DefaultRegistry(), shipping.DefaultCatalog(), products, store)
	svc := NewService(carts, order.NewInMemoryRepository(), store)
	return svc, carts, store
}

func validCustomer() *order.Customer {
	return &order.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100"}
}

func validAddress() *order.Address {
	return &order.Address{Address1: "1 Analytical Way", City: "London", State: "LDN", Zip: "E1 6AN"}
}

func validCardPayment() *Payment {
	return &Payment{Method: PaymentCard, Card: CardDetails{
		Number: "4242 4242 4242 4242", Name: "Ada Lovelace", Expiry: "12/27", CVV: "123",
	}}
}

func boolPtr(v bool) *bool { return &v }

// walks a draft through all four stages
func advanceToReview(t *testing.T, svc *Service, session string) {
	t.Helper()
	_, err := svc.Advance(session, StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)
	_, err = svc.Advance(session, StagePayment, AdvanceInput{Address: validAddress(), ShippingMethod: "express"})
	require.NoError(t, err)
	_, err = svc.Advance(session, StageReview, AdvanceInput{Payment: validCardPayment()})
	require.NoError(t, err)
}

func TestStart_RejectsEmptyCart(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	_, err := svc.Start("s1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestAdvance_FailureKeepsStage(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	_, err := svc.Advance("s1", StageShipping, AdvanceInput{
		Customer: &order.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email", Phone: "555-0100"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonInvalidEmail, verr.Reason)

	st := svc.Get("s1")
	assert.Equal(t, StageCustomer, st.CurrentStage)
	assert.Empty(t, st.Customer.FirstName, "failed advance must not capture stage data")
}

func TestAdvance_MissingFieldReportsField(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	_, err := svc.Advance("s1", StageShipping, AdvanceInput{
		Customer: &order.Customer{FirstName: "Ada", LastName: "Lovelace", Phone: "555-0100"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonMissingField, verr.Reason)
	assert.Equal(t, "email", verr.Field)
}

func TestAdvance_MarksCompletedAndMoves(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	st, err := svc.Advance("s1", StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)
	assert.Equal(t, StageShipping, st.CurrentStage)
	assert.True(t, st.Completed[StageCustomer])
	assert.Equal(t, "Ada", st.Customer.FirstName)
}

func TestAdvance_ShippingRequiresAddressOrSavedID(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	_, err := svc.Advance("s1", StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)

	_, err = svc.Advance("s1", StagePayment, AdvanceInput{Address: &order.Address{City: "London"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonMissingAddress, verr.Reason)

	// a saved address satisfies the stage with no new address fields
	st, err := svc.Advance("s1", StagePayment, AdvanceInput{SavedAddressID: "addr-1"})
	require.NoError(t, err)
	assert.Equal(t, StagePayment, st.CurrentStage)
}

func TestAdvance_CardValidation(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	_, err := svc.Advance("s1", StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)
	_, err = svc.Advance("s1", StagePayment, AdvanceInput{Address: validAddress()})
	require.NoError(t, err)

	cases := []struct {
		name    string
		payment *Payment
		reason  Reason
	}{
		{"missing fields", &Payment{Method: PaymentCard, Card: CardDetails{Number: "4242424242424242"}}, ReasonMissingCardField},
		{"short number", &Payment{Method: PaymentCard, Card: CardDetails{Number: "4242", Name: "A", Expiry: "12/27", CVV: "123"}}, ReasonInvalidCardNumber},
		{"bad cvv", &Payment{Method: PaymentCard, Card: CardDetails{Number: "4242424242424242", Name: "A", Expiry: "12/27", CVV: "12"}}, ReasonInvalidCVV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Advance("s1", StageReview, AdvanceInput{Payment: tc.payment})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}

	// cash on delivery needs no card fields
	st, err := svc.Advance("s1", StageReview, AdvanceInput{Payment: &Payment{Method: PaymentCOD}})
	require.NoError(t, err)
	assert.Equal(t, StageReview, st.CurrentStage)
}

func TestRetreat_NeverValidates(t *testing.T) {
	svc, _, _ := newTestEnv(t)
	_, err := svc.Advance("s1", StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)
	_, err = svc.Advance("s1", StagePayment, AdvanceInput{Address: validAddress()})
	require.NoError(t, err)

	st, err := svc.Retreat("s1", StageCustomer)
	require.NoError(t, err)
	assert.Equal(t, StageCustomer, st.CurrentStage)
	// captured data survives backward navigation
	assert.Equal(t, "Ada", st.Customer.FirstName)
	assert.Equal(t, "1 Analytical Way", st.ShippingAddress.Address1)

	_, err = svc.Retreat("s1", Stage(7))
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestSubmit_GatedToReviewStageAndTerms(t *testing.T) {
	svc, carts, _ := newTestEnv(t)
	_, err := carts.AddItem("s1", 1, 1)
	require.NoError(t, err)

	_, err = svc.Submit("s1")
	assert.ErrorIs(t, err, ErrNotAtReview)

	advanceToReview(t, svc, "s1")

	// terms not accepted yet
	_, err = svc.Submit("s1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ReasonTermsNotAccepted, verr.Reason)

	st := svc.Get("s1")
	assert.Equal(t, StageReview, st.CurrentStage, "failed submit leaves state untouched")
}

func TestSubmit_CreatesOrderAndClearsState(t *testing.T) {
	svc, carts, store := newTestEnv(t)
	_, err := carts.AddItem("s1", 1, 2)
	require.NoError(t, err)
	_, _, err = carts.ApplyCoupon("s1", "SAVE10")
	require.NoError(t, err)

	advanceToReview(t, svc, "s1")
	_, err = svc.Advance("s1", StageReview, AdvanceInput{AgreeTerms: boolPtr(true)})
	require.NoError(t, err)

	ord, err := svc.Submit("s1")
	require.NoError(t, err)
	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, "Ada", ord.Customer.FirstName)
	assert.Equal(t, "express", ord.ShippingMethod)
	assert.Equal(t, PaymentCard, ord.PaymentMethod)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, 2, ord.Items[0].Quantity)
	assert.Positive(t, ord.Summary.Total)

	// cart and draft are torn down
	snapshot, summary := carts.Get("s1")
	assert.Empty(t, snapshot.Items)
	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, StageCustomer, svc.Get("s1").CurrentStage)

	// last completed order is persisted for the confirmation page
	_, err = store.Load(order.LastOrderKey("s1"))
	assert.NoError(t, err)
}

func TestDraft_RestoresFromStorage(t *testing.T) {
	store := storage.NewMemoryStore()
	products := product.NewService(product.NewInMemoryRepository(product.DefaultCatalog()))
	carts := cart.NewService(cart.NewEngine(), coupon.DefaultRegistry(), shipping.DefaultCatalog(), products, store)
	svc := NewService(carts, order.NewInMemoryRepository(), store)

	_, err := svc.Advance("s1", StageShipping, AdvanceInput{Customer: validCustomer()})
	require.NoError(t, err)

	// a fresh controller over the same store resumes the draft
	resumed := NewService(carts, order.NewInMemoryRepository(), store)
	st := resumed.Get("s1")
	assert.Equal(t, StageShipping, st.CurrentStage)
	assert.True(t, st.Completed[StageCustomer])
	assert.Equal(t, "ada@example.com", st.Customer.Email)
}
