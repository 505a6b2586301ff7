package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"victus-storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutAttemptRepository implements CheckoutAttemptRepository on PostgreSQL.
// Amounts cross the driver as text so NUMERIC keeps its exact value.
type checkoutAttemptRepository struct {
	db     DBTX
	now    func() time.Time
	logger zerolog.Logger
}

// NewCheckoutAttemptRepository creates a PostgreSQL-backed ledger.
func NewCheckoutAttemptRepository(db DBTX, logger zerolog.Logger) CheckoutAttemptRepository {
	return &checkoutAttemptRepository{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With().Str("repository", "checkout_attempt").Logger(),
	}
}

// Create records a new attempt.
func (r *checkoutAttemptRepository) Create(ctx context.Context, a *model.CheckoutAttempt) error {
	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	query := `
		INSERT INTO checkout_attempts (
			idempotency_key, session_id, email, status, order_id,
			total_price, used_fallback, error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)
		ON CONFLICT (idempotency_key) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		a.IdempotencyKey,
		a.SessionID,
		a.Email,
		a.Status,
		a.OrderID,
		a.TotalPrice.String(),
		a.UsedFallback,
		a.Error,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("idempotency_key", a.IdempotencyKey).Msg("failed to insert checkout attempt")
		return fmt.Errorf("insert checkout attempt: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAttemptExists
	}

	r.logger.Debug().
		Str("idempotency_key", a.IdempotencyKey).
		Str("session_id", a.SessionID).
		Msg("checkout attempt recorded")

	return nil
}

// GetByKey returns the attempt for key, or nil when there is none.
func (r *checkoutAttemptRepository) GetByKey(ctx context.Context, key string) (*model.CheckoutAttempt, error) {
	query := `
		SELECT idempotency_key, session_id, email, status, order_id,
			total_price::text, used_fallback, error, created_at, updated_at
		FROM checkout_attempts
		WHERE idempotency_key = $1`

	var (
		a     model.CheckoutAttempt
		total string
	)
	err := r.db.QueryRow(ctx, query, key).Scan(
		&a.IdempotencyKey,
		&a.SessionID,
		&a.Email,
		&a.Status,
		&a.OrderID,
		&total,
		&a.UsedFallback,
		&a.Error,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("idempotency_key", key).Msg("failed to get checkout attempt")
		return nil, fmt.Errorf("get checkout attempt: %w", err)
	}

	a.TotalPrice, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse checkout attempt total %q: %w", total, err)
	}

	return &a, nil
}

// Update overwrites the mutable fields of an existing attempt.
func (r *checkoutAttemptRepository) Update(ctx context.Context, a *model.CheckoutAttempt) error {
	a.UpdatedAt = r.now()

	query := `
		UPDATE checkout_attempts
		SET status = $2, order_id = $3, total_price = $4::numeric,
			used_fallback = $5, error = $6, updated_at = $7
		WHERE idempotency_key = $1`

	tag, err := r.db.Exec(ctx, query,
		a.IdempotencyKey,
		a.Status,
		a.OrderID,
		a.TotalPrice.String(),
		a.UsedFallback,
		a.Error,
		a.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("idempotency_key", a.IdempotencyKey).Msg("failed to update checkout attempt")
		return fmt.Errorf("update checkout attempt: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAttemptNotFound
	}

	r.logger.Debug().
		Str("idempotency_key", a.IdempotencyKey).
		Str("status", a.Status).
		Msg("checkout attempt updated")

	return nil
}
