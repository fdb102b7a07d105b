package quotecart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// LineItem is one catalog product flagged for a future quote request.
type LineItem struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Quantity       int               `json:"quantity"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Product is the catalog descriptor handed to AddItem.
type Product struct {
	ID             int64
	Name           string
	Description    string
	Price          decimal.Decimal
	Category       string
	Brand          string
	Specifications map[string]string
}

// Notifier surfaces user-visible messages raised by cart mutations.
type Notifier interface {
	Notify(message string)
}

// Store holds the ordered quote-draft collection. Every mutation persists the
// whole collection, so a crash loses at most the most recent change. Snapshot
// read failures yield an empty cart, never an error.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	persist  Persistence
	notifier Notifier
}

// NewStore builds a store and rehydrates it from the persisted snapshot.
// The notifier is optional.
func NewStore(persist Persistence, notifier Notifier) *Store {
	s := &Store{persist: persist, notifier: notifier}
	if persist != nil {
		if items, err := persist.Load(); err == nil && items != nil {
			s.items = items
		}
	}
	return s
}

// AddItem appends the product with quantity 1, or bumps the quantity of an
// existing line with the same id. Existing fields are not refreshed.
func (s *Store) AddItem(p Product) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			s.save()
			s.mu.Unlock()
			s.notify(fmt.Sprintf("Added another %s to your quote", s.items[i].Name))
			return
		}
	}
	s.items = append(s.items, LineItem{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Quantity:       1,
		Category:       p.Category,
		Brand:          p.Brand,
		Specifications: p.Specifications,
	})
	s.save()
	s.mu.Unlock()
	s.notify(fmt.Sprintf("Added %s to your quote", p.Name))
}

// RemoveItem deletes the line with the matching id. Absent ids are a no-op
// and raise no notification.
func (s *Store) RemoveItem(id int64) {
	s.mu.Lock()
	var removed string
	for i := range s.items {
		if s.items[i].ID == id {
			removed = s.items[i].Name
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.save()
	s.mu.Unlock()
	if removed != "" {
		s.notify(fmt.Sprintf("Removed %s from your quote", removed))
	}
}

// UpdateQuantity sets the line's quantity. Zero or negative removes the line.
func (s *Store) UpdateQuantity(id int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.save()
	s.mu.Unlock()
}

// Clear empties the collection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.save()
	s.mu.Unlock()
	s.notify("Quote cart cleared")
}

// Items returns a copy of the current collection in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalValue is the sum of price * quantity across lines.
func (s *Store) TotalValue() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// save persists best-effort. Callers hold the lock.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	snapshot := make([]LineItem, len(s.items))
	copy(snapshot, s.items)
	_ = s.persist.Save(snapshot)
}

func (s *Store) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}
