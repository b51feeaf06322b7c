// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/tracing"
)

const (
	connectAttempts     = 5
	connectInitialDelay = 500 * time.Millisecond
	connectMaxDelay     = 10 * time.Second
)

type txContextKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

type DBClient struct {
	// pool is the native PGX pool we hold to allow closing
	pool *pgxpool.Pool
	// db is the database/sql adapter used for transactions and as the
	// default statement runner
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement provides a StatementBuilderType bound to the pool, or to the
// transaction attached to ctx when one is present.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	if tx := txFromContext(ctx); tx != nil {
		return sq.StatementBuilder.
			PlaceholderFormat(sq.Dollar).
			RunWith(tx)
	}

	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		RunWith(d.db)
}

// WithTx executes fn inside a single transaction. The transaction is
// attached to the context passed to fn so that any Statement call inside
// runs on it. A non-nil error from fn rolls everything back. When ctx
// already carries a transaction, fn joins it and the outer caller keeps
// commit responsibility.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

func txFromContext(ctx context.Context) TxInterface {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient creates the connection pool and verifies connectivity,
// retrying the initial ping with exponential backoff before giving up.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %w", err)
	}

	if cfg.TracingEnabled {
		// otelpgx.NewTracer uses the global TracerProvider, just like our tracer struct
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)

	delay := connectInitialDelay
	for attempt := 1; ; attempt++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if attempt >= connectAttempts {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", attempt, err)
		}

		logger.Warnf("database not reachable (attempt %d/%d), retrying in %s: %v", attempt, connectAttempts, delay, err)
		time.Sleep(delay)
		delay *= 2
		if delay > connectMaxDelay {
			delay = connectMaxDelay
		}
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to start metrics collection for database: %w", err)
		}
	}

	d := new(DBClient)
	d.pool = pool
	d.db = db

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d, nil
}
