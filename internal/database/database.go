package database

import (
	"context"
	"fmt"
	"time"

	"victus-storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ApplicationName identifies ledger connections in pg_stat_activity.
const ApplicationName = "victus-storefront-ledger"

// ledgerStatementTimeout bounds every ledger statement. Ledger writes are
// single-row and a slow database must not hold a checkout open.
const ledgerStatementTimeout = 5 * time.Second

// NewPool creates the connection pool for the checkout attempt ledger and
// checks that the database answers.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "ledger-pool").Logger()

	poolConfig, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Str("application_name", ApplicationName).
		Int32("max_connections", poolConfig.MaxConns).
		Int32("min_connections", poolConfig.MinConns).
		Msg("opening checkout ledger pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create ledger pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping ledger database %s: %w", cfg.Database, err)
	}

	logger.Info().Msg("checkout ledger pool ready")
	return pool, nil
}

// poolConfig translates the ledger settings into a pgxpool configuration.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse ledger database config: %w", err)
	}

	pc.MaxConns = int32(cfg.MaxConnections)
	pc.MinConns = int32(cfg.MinConnections)
	pc.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	pc.MaxConnIdleTime = 5 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	pc.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	pc.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprint(ledgerStatementTimeout.Milliseconds())

	return pc, nil
}
