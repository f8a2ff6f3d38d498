package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/cart"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/store"
)

type mockOrderAPI struct {
	mu          sync.Mutex
	err         error
	submissions []domain.OrderSubmission
	keys        []string
	nextID      int64
}

func (m *mockOrderAPI) CreateOrder(_ context.Context, sub domain.OrderSubmission, key string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, sub)
	m.keys = append(m.keys, key)
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	return &domain.Order{ID: m.nextID, ProductID: sub.ProductID, Quantity: sub.Quantity}, nil
}

func ledgerWith(items ...domain.CartItem) *cart.Ledger {
	ledger := cart.NewLedger(store.NewMemory(), nil)
	for _, item := range items {
		ledger.AddItem(domain.Product{
			ID:    item.ProductID,
			Name:  item.Name,
			Price: item.Price,
		}, item.Quantity)
	}
	return ledger
}

func TestWizard_EmptyCartShortCircuits(t *testing.T) {
	w := NewWizard(&mockOrderAPI{}, ledgerWith(), nil)

	assert.Equal(t, StatusEmptyCart, w.Status())
	assert.True(t, w.Status().IsTerminal())
	// The wizard never reaches step one.
	assert.NotEqual(t, StepShipping, w.Step())
	assert.NotNil(t, w.SubmitShipping(validShipping()))
}

func TestWizard_HappyPath(t *testing.T) {
	api := &mockOrderAPI{}
	ledger := ledgerWith(
		domain.CartItem{ProductID: 1, Name: "Keyboard", Price: 50.00, Quantity: 2},
		domain.CartItem{ProductID: 2, Name: "Mouse", Price: 20.00, Quantity: 1},
	)
	w := NewWizard(api, ledger, nil)

	require.Empty(t, w.SubmitShipping(validShipping()))
	assert.Equal(t, StepPayment, w.Step())

	require.Empty(t, w.SubmitPayment(validPayment()))
	assert.Equal(t, StepReview, w.Step())

	results := w.PlaceOrder(context.Background())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotZero(t, r.OrderID)
	}

	assert.Equal(t, StatusConfirmed, w.Status())
	assert.Empty(t, ledger.Items(), "cart cleared after confirmation")
	assert.Empty(t, w.Shipping(), "draft discarded")

	// One submission per cart entry, in cart order, named for the shopper.
	require.Len(t, api.submissions, 2)
	assert.Equal(t, int64(1), api.submissions[0].ProductID)
	assert.Equal(t, 2, api.submissions[0].Quantity)
	assert.Equal(t, int64(2), api.submissions[1].ProductID)
	assert.Equal(t, "John Doe", api.submissions[0].CustomerName)

	// Every line carries its own idempotency key.
	require.Len(t, api.keys, 2)
	assert.NotEmpty(t, api.keys[0])
	assert.NotEqual(t, api.keys[0], api.keys[1])
}

func TestWizard_ConfirmsEvenWhenAllSubmissionsFail(t *testing.T) {
	api := &mockOrderAPI{err: errors.New("connection refused")}
	ledger := ledgerWith(
		domain.CartItem{ProductID: 1, Name: "Keyboard", Price: 50.00, Quantity: 1},
		domain.CartItem{ProductID: 2, Name: "Mouse", Price: 20.00, Quantity: 1},
	)
	w := NewWizard(api, ledger, nil)

	require.Empty(t, w.SubmitShipping(validShipping()))
	require.Empty(t, w.SubmitPayment(validPayment()))

	results := w.PlaceOrder(context.Background())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
	}

	// Best effort: the shopper still sees success and the cart clears.
	assert.Equal(t, StatusConfirmed, w.Status())
	assert.Empty(t, ledger.Items())
	// Every line was attempted despite the first failing.
	assert.Len(t, api.submissions, 2)
}

func TestWizard_InvalidInputKeepsStep(t *testing.T) {
	w := NewWizard(&mockOrderAPI{}, ledgerWith(domain.CartItem{ProductID: 1, Name: "Keyboard", Price: 50, Quantity: 1}), nil)

	s := validShipping()
	s.Email = "nope"
	assert.NotEmpty(t, w.SubmitShipping(s))
	assert.Equal(t, StepShipping, w.Step())

	require.Empty(t, w.SubmitShipping(validShipping()))

	p := validPayment()
	p.CVV = "1"
	assert.NotEmpty(t, w.SubmitPayment(p))
	assert.Equal(t, StepPayment, w.Step())
}

func TestWizard_BackPreservesShippingData(t *testing.T) {
	w := NewWizard(&mockOrderAPI{}, ledgerWith(domain.CartItem{ProductID: 1, Name: "Keyboard", Price: 50, Quantity: 1}), nil)

	shipping := validShipping()
	require.Empty(t, w.SubmitShipping(shipping))
	w.Back()

	assert.Equal(t, StepShipping, w.Step())
	assert.Equal(t, shipping, w.Shipping())

	require.Empty(t, w.SubmitShipping(shipping))
	assert.Equal(t, StepPayment, w.Step())
}

func TestWizard_TaxAndTotal(t *testing.T) {
	// $100.00 cart: exactly $8.00 tax, $108.00 total.
	ledger := ledgerWith(domain.CartItem{ProductID: 1, Name: "Monitor", Price: 100.00, Quantity: 1})
	w := NewWizard(&mockOrderAPI{}, ledger, nil)

	assert.InDelta(t, 100.00, w.Subtotal(), 0.0001)
	assert.InDelta(t, 8.00, w.Tax(), 0.0001)
	assert.InDelta(t, 108.00, w.GrandTotal(), 0.0001)
}

func TestWizard_PlaceOrderOnlyFromReview(t *testing.T) {
	w := NewWizard(&mockOrderAPI{}, ledgerWith(domain.CartItem{ProductID: 1, Name: "Keyboard", Price: 50, Quantity: 1}), nil)

	assert.Nil(t, w.PlaceOrder(context.Background()))
	assert.Equal(t, StatusInProgress, w.Status())
	assert.Equal(t, StepShipping, w.Step())
}
