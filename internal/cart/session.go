package cart

import (
	"sync"
	"time"

	"victus-storefront/internal/model"
)

// Session is a shopper's cart together with the checkout-local state that
// belongs to it: the applied coupon, the submission guard and an order that
// was placed but never confirmed.
type Session struct {
	ID string

	store *Store

	// gate orders cart changes against the start of a checkout so that a
	// submission never misses a change that was already accepted.
	gate sync.Mutex

	mu           sync.Mutex
	coupon       *model.AppliedCoupon
	submitting   bool
	pendingOrder *model.PlacedOrder
	pendingKey   string
	lastSeen     time.Time
}

func newSession(id string, now time.Time) *Session {
	s := &Session{
		ID:       id,
		store:    NewStore(),
		lastSeen: now,
	}
	// A coupon is priced against the subtotal it was validated with.
	s.store.Subscribe(func(Event) {
		s.RemoveCoupon()
	})
	return s
}

// Store returns the session's cart.
func (s *Session) Store() *Store {
	return s.store
}

// View returns the cart snapshot with the coupon-adjusted total.
func (s *Session) View() model.CartView {
	view := s.store.Snapshot()
	view.SessionID = s.ID

	if c := s.AppliedCoupon(); c != nil {
		view.AppliedCoupon = c
		view.FinalTotal = c.FinalAmount
	}
	return view
}

// AppliedCoupon returns a copy of the applied coupon, or nil.
func (s *Session) AppliedCoupon() *model.AppliedCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// ApplyCoupon replaces any previously applied coupon.
func (s *Session) ApplyCoupon(c model.AppliedCoupon) {
	s.mu.Lock()
	s.coupon = &c
	s.mu.Unlock()
}

// RemoveCoupon reverts checkout to the raw subtotal.
func (s *Session) RemoveCoupon() {
	s.mu.Lock()
	s.coupon = nil
	s.mu.Unlock()
}

// Mutate runs fn against the cart when the session accepts changes. It
// returns ErrCheckoutInProgress while a submission runs and
// ErrOrderAwaitingConfirmation while a placed order is unconfirmed, since
// confirming that order clears the cart. An error from fn is returned as is.
func (s *Session) Mutate(fn func(*Store) error) error {
	s.gate.Lock()
	defer s.gate.Unlock()

	s.mu.Lock()
	submitting, pending := s.submitting, s.pendingOrder != nil
	s.mu.Unlock()

	switch {
	case submitting:
		return model.ErrCheckoutInProgress
	case pending:
		return model.ErrOrderAwaitingConfirmation
	}
	return fn(s.store)
}

// BeginCheckout marks a submission as in flight. It returns false when one
// is already running. Changes accepted by Mutate before it returns are
// visible to the submission.
func (s *Session) BeginCheckout() bool {
	s.gate.Lock()
	defer s.gate.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

// EndCheckout releases the submission guard.
func (s *Session) EndCheckout() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// CheckingOut reports whether a submission is in flight.
func (s *Session) CheckingOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SetPendingOrder records an order that was created but whose details could
// not be fetched, along with the idempotency key that produced it.
func (s *Session) SetPendingOrder(order model.PlacedOrder, key string) {
	s.mu.Lock()
	s.pendingOrder = &order
	s.pendingKey = key
	s.mu.Unlock()
}

// PendingOrder returns the unconfirmed order and its idempotency key, if any.
func (s *Session) PendingOrder() (*model.PlacedOrder, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingOrder == nil {
		return nil, ""
	}
	o := *s.pendingOrder
	return &o, s.pendingKey
}

// ClearPendingOrder forgets the unconfirmed order.
func (s *Session) ClearPendingOrder() {
	s.mu.Lock()
	s.pendingOrder = nil
	s.pendingKey = ""
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
