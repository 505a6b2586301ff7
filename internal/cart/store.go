package cart

import (
	"fmt"
	"sync"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventAdded           EventKind = "added"
	EventUpdated         EventKind = "updated"
	EventRemoved         EventKind = "removed"
	EventQuantityChanged EventKind = "quantity_changed"
	EventCleared         EventKind = "cleared"
)

// Event describes a committed cart mutation. Notification is set only for
// mutations that tell the shopper something (add, update, remove).
type Event struct {
	Kind         EventKind           `json:"kind"`
	VariantID    int64               `json:"variantId,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// Store is the cart of a single shopper. Lines keep insertion order and are
// keyed by variant id. The backing slice never leaves the store: every read
// returns a copy.
type Store struct {
	mu          sync.Mutex
	lines       []model.CartLine
	subscribers map[int]func(Event)
	nextSubID   int
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{
		subscribers: make(map[int]func(Event)),
	}
}

// Add puts one unit of item into the cart. An existing line for the same
// variant is incremented instead of duplicated.
func (s *Store) Add(item model.CartItem) Event {
	s.mu.Lock()
	var ev Event
	if i := s.indexOf(item.VariantID); i >= 0 {
		s.lines[i].Quantity++
		ev = Event{
			Kind:      EventUpdated,
			VariantID: item.VariantID,
			Notification: &model.Notification{
				Title:       "Updated cart",
				Description: fmt.Sprintf("%s quantity increased", item.Name),
			},
		}
	} else {
		s.lines = append(s.lines, model.CartLine{CartItem: item, Quantity: 1})
		ev = Event{
			Kind:      EventAdded,
			VariantID: item.VariantID,
			Notification: &model.Notification{
				Title:       "Added to cart",
				Description: fmt.Sprintf("%s added to your cart", item.Name),
			},
		}
	}
	s.mu.Unlock()

	s.publish(ev)
	return ev
}

// Remove deletes the line for variantID. Removing an absent variant is not an
// error: the removal notification is still returned, but subscribers only
// hear about lines that were actually removed.
func (s *Store) Remove(variantID int64) Event {
	s.mu.Lock()
	i := s.indexOf(variantID)
	if i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	s.mu.Unlock()

	ev := Event{
		Kind:      EventRemoved,
		VariantID: variantID,
		Notification: &model.Notification{
			Title:       "Removed from cart",
			Description: "Item removed from your cart",
		},
	}
	if i >= 0 {
		s.publish(ev)
	}
	return ev
}

// UpdateQuantity overwrites the quantity of a line. A quantity below 1 removes
// the line. Unknown variants are left alone.
func (s *Store) UpdateQuantity(variantID int64, quantity int) Event {
	if quantity < 1 {
		return s.Remove(variantID)
	}

	s.mu.Lock()
	i := s.indexOf(variantID)
	if i >= 0 {
		s.lines[i].Quantity = quantity
	}
	s.mu.Unlock()

	ev := Event{Kind: EventQuantityChanged, VariantID: variantID}
	if i >= 0 {
		s.publish(ev)
	}
	return ev
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.publish(Event{Kind: EventCleared})
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.lines)
}

// TotalPrice returns the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.lines)
}

// Snapshot returns the lines and both aggregates computed from the same state.
func (s *Store) Snapshot() model.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]model.CartLine, len(s.lines))
	copy(lines, s.lines)
	total := totalPrice(lines)
	return model.CartView{
		Lines:      lines,
		TotalItems: totalItems(lines),
		TotalPrice: total,
		FinalTotal: total,
	}
}

// Subscribe registers fn for every committed mutation. Subscribers run
// synchronously on the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(variantID int64) int {
	for i := range s.lines {
		if s.lines[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

func totalItems(lines []model.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func totalPrice(lines []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}
