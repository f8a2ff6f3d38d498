package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/store"
)

// cartKey is the persisted snapshot slot; disjoint from the session keys.
const cartKey = "cf_cart"

// Ledger owns the ordered list of cart entries. At most one entry per
// product; insertion order is preserved for display. Every mutation
// persists the full snapshot synchronously, with store failures
// absorbed by the fallback store.
type Ledger struct {
	mu    sync.Mutex
	store store.KV
	log   *slog.Logger
	items []domain.CartItem
	subs  []func()
}

func NewLedger(kv store.KV, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	l := &Ledger{store: kv, log: log}
	l.load()
	return l
}

func (l *Ledger) load() {
	raw, err := l.store.Get(context.Background(), cartKey)
	if err != nil {
		return
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		l.log.Warn("discarding unreadable cart snapshot", "error", err)
		return
	}
	l.items = items
}

// AddItem merges quantity into an existing entry for the product, or
// appends a new entry at the end.
func (l *Ledger) AddItem(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	l.mu.Lock()
	merged := false
	for i := range l.items {
		if l.items[i].ProductID == product.ID {
			l.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		l.items = append(l.items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}
	l.persistLocked()
	l.mu.Unlock()
	l.notify()
}

// RemoveItem deletes the entry for the product; no-op when absent.
func (l *Ledger) RemoveItem(productID int64) {
	l.mu.Lock()
	for i, item := range l.items {
		if item.ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	l.persistLocked()
	l.mu.Unlock()
	l.notify()
}

// UpdateQuantity sets the entry's quantity to exactly the given value.
// A quantity of zero or less removes the entry. Unknown products are a
// no-op. No upper bound is enforced here — stock limits belong to the
// presentation layer.
func (l *Ledger) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		l.RemoveItem(productID)
		return
	}
	l.mu.Lock()
	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].Quantity = quantity
			break
		}
	}
	l.persistLocked()
	l.mu.Unlock()
	l.notify()
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	l.persistLocked()
	l.mu.Unlock()
	l.notify()
}

// Items returns a copy of the entries in insertion order.
func (l *Ledger) Items() []domain.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]domain.CartItem, len(l.items))
	copy(items, l.items)
	return items
}

// Count is the sum of quantities across entries.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, item := range l.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of price times quantity, computed fresh on each call.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0.0
	for _, item := range l.items {
		total += item.Subtotal()
	}
	return total
}

// Subscribe registers a callback invoked after every mutation.
func (l *Ledger) Subscribe(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

func (l *Ledger) persistLocked() {
	raw, err := json.Marshal(l.items)
	if err != nil {
		l.log.Warn("failed to encode cart snapshot", "error", err)
		return
	}
	if l.items == nil {
		raw = []byte("[]")
	}
	if err := l.store.Set(context.Background(), cartKey, string(raw)); err != nil {
		l.log.Warn("failed to persist cart snapshot", "error", err)
	}
}

func (l *Ledger) notify() {
	l.mu.Lock()
	subs := make([]func(), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
