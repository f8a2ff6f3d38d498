package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
)

// TaxRate is the fixed rate applied at review time.
const TaxRate = 0.08

// OrderAPI is the slice of the gateway the wizard submits through.
type OrderAPI interface {
	CreateOrder(ctx context.Context, sub domain.OrderSubmission, idempotencyKey string) (*domain.Order, error)
}

// CartSource is the ledger surface the wizard reads and clears.
type CartSource interface {
	Items() []domain.CartItem
	Total() float64
	Clear()
}

// SubmissionResult is the outcome of one order line. Failures are
// collected here and logged, never surfaced as checkout failure: order
// persistence is best effort by design, so the shopper is not stranded
// mid-checkout when the backend is down.
type SubmissionResult struct {
	ProductID int64
	OrderID   int64
	Err       error
}

// Wizard drives the three-step checkout: shipping, payment, review.
// The draft lives only in memory and is discarded on confirmation.
type Wizard struct {
	mu     sync.Mutex
	orders OrderAPI
	cart   CartSource
	log    *slog.Logger

	status   Status
	step     Step
	shipping Shipping
	payment  Payment
}

// NewWizard starts a checkout over the current cart. An empty cart
// short-circuits to the EmptyCart terminal state.
func NewWizard(orders OrderAPI, cart CartSource, log *slog.Logger) *Wizard {
	if log == nil {
		log = slog.Default()
	}
	w := &Wizard{orders: orders, cart: cart, log: log}
	if len(cart.Items()) == 0 {
		w.status = StatusEmptyCart
	} else {
		w.status = StatusInProgress
		w.step = StepShipping
	}
	return w
}

func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// SubmitShipping validates step one and advances to payment. Invalid
// input keeps the wizard on the shipping step; entered values are kept
// either way.
func (w *Wizard) SubmitShipping(s Shipping) map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusInProgress || w.step != StepShipping {
		return map[string]string{"step": "not on the shipping step"}
	}
	w.shipping = s
	if errs := s.Validate(); len(errs) > 0 {
		return errs
	}
	w.step = StepPayment
	return nil
}

// SubmitPayment validates step two and advances to review.
func (w *Wizard) SubmitPayment(p Payment) map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusInProgress || w.step != StepPayment {
		return map[string]string{"step": "not on the payment step"}
	}
	w.payment = p
	if errs := p.Validate(); len(errs) > 0 {
		return errs
	}
	w.step = StepReview
	return nil
}

// Back returns to the previous step without discarding entered data.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status != StatusInProgress {
		return
	}
	switch w.step {
	case StepPayment:
		w.step = StepShipping
	case StepReview:
		w.step = StepPayment
	}
}

func (w *Wizard) Shipping() Shipping {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shipping
}

func (w *Wizard) Payment() Payment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payment
}

// Subtotal, Tax and GrandTotal are computed fresh from the ledger.
func (w *Wizard) Subtotal() float64 {
	return w.cart.Total()
}

func (w *Wizard) Tax() float64 {
	return w.cart.Total() * TaxRate
}

func (w *Wizard) GrandTotal() float64 {
	return w.cart.Total() * (1 + TaxRate)
}

// PlaceOrder submits one order line per cart entry, in cart order, each
// under its own idempotency key. Submission is best effort and
// non-transactional: every failure is recorded in the returned results
// and logged, but the checkout still confirms and the cart is cleared
// after all lines have been attempted.
func (w *Wizard) PlaceOrder(ctx context.Context) []SubmissionResult {
	w.mu.Lock()
	if w.status != StatusInProgress || w.step != StepReview {
		w.mu.Unlock()
		return nil
	}
	customerName := w.shipping.FirstName + " " + w.shipping.LastName
	w.mu.Unlock()

	items := w.cart.Items()
	results := make([]SubmissionResult, 0, len(items))
	for _, item := range items {
		sub := domain.OrderSubmission{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			CustomerName: customerName,
		}
		order, err := w.orders.CreateOrder(ctx, sub, uuid.NewString())
		result := SubmissionResult{ProductID: item.ProductID, Err: err}
		if err != nil {
			w.log.Warn("order submission failed, continuing checkout",
				"product_id", item.ProductID, "quantity", item.Quantity, "error", err)
		} else if order != nil {
			result.OrderID = order.ID
		}
		results = append(results, result)
	}

	w.cart.Clear()

	w.mu.Lock()
	w.status = StatusConfirmed
	w.shipping = Shipping{}
	w.payment = Payment{}
	w.mu.Unlock()

	return results
}
