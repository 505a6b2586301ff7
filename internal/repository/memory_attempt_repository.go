package repository

import (
	"context"
	"sync"
	"time"

	"victus-storefront/internal/model"
)

// memoryAttemptRepository keeps the ledger in process memory. It is used
// when no database is configured; entries do not survive a restart.
type memoryAttemptRepository struct {
	mu       sync.RWMutex
	attempts map[string]model.CheckoutAttempt
	now      func() time.Time
}

// NewMemoryAttemptRepository creates an in-memory ledger.
func NewMemoryAttemptRepository() CheckoutAttemptRepository {
	return &memoryAttemptRepository{
		attempts: make(map[string]model.CheckoutAttempt),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryAttemptRepository) Create(_ context.Context, a *model.CheckoutAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attempts[a.IdempotencyKey]; ok {
		return ErrAttemptExists
	}

	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.attempts[a.IdempotencyKey] = clone(*a)
	return nil
}

func (r *memoryAttemptRepository) GetByKey(_ context.Context, key string) (*model.CheckoutAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.attempts[key]
	if !ok {
		return nil, nil
	}
	out := clone(a)
	return &out, nil
}

func (r *memoryAttemptRepository) Update(_ context.Context, a *model.CheckoutAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.attempts[a.IdempotencyKey]
	if !ok {
		return ErrAttemptNotFound
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.now()
	r.attempts[a.IdempotencyKey] = clone(*a)
	return nil
}

// clone detaches the pointer fields from the caller's copy.
func clone(a model.CheckoutAttempt) model.CheckoutAttempt {
	if a.OrderID != nil {
		id := *a.OrderID
		a.OrderID = &id
	}
	if a.Error != nil {
		msg := *a.Error
		a.Error = &msg
	}
	return a
}
