package repository

import (
	"context"
	"errors"

	"victus-storefront/internal/model"
)

var (
	// ErrAttemptExists is returned by Create when the idempotency key is taken.
	ErrAttemptExists = errors.New("checkout attempt already exists")

	// ErrAttemptNotFound is returned by Update for an unknown key.
	ErrAttemptNotFound = errors.New("checkout attempt not found")
)

// CheckoutAttemptRepository is the idempotency ledger for checkout
// submissions, keyed by idempotency key.
type CheckoutAttemptRepository interface {
	// Create records a new attempt. It returns ErrAttemptExists when the
	// key was already used.
	Create(ctx context.Context, attempt *model.CheckoutAttempt) error

	// GetByKey returns the attempt for key, or nil when there is none.
	GetByKey(ctx context.Context, key string) (*model.CheckoutAttempt, error)

	// Update overwrites the mutable fields of an existing attempt.
	Update(ctx context.Context, attempt *model.CheckoutAttempt) error
}
