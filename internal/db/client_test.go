// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/quittance/property-service/internal/logging"
)

// txRecorder counts the transaction lifecycle events seen by the fake
// driver underneath database/sql.
type txRecorder struct {
	begins    int
	commits   int
	rollbacks int
}

type fakeConnector struct {
	rec *txRecorder
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{rec: c.rec}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return nil }

// fakeConn implements driver.ConnBeginTx because the client opens
// transactions with an explicit isolation level.
type fakeConn struct {
	rec *txRecorder
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.rec.begins++
	return &fakeTx{rec: c.rec}, nil
}

type fakeTx struct {
	rec *txRecorder
}

func (t *fakeTx) Commit() error {
	t.rec.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rec.rollbacks++
	return nil
}

func newTestClient(rec *txRecorder) *DBClient {
	return &DBClient{
		db:     sql.OpenDB(&fakeConnector{rec: rec}),
		logger: logging.NewNoopLogger(),
	}
}

func TestDBClient_WithTxCommitsOnSuccess(t *testing.T) {
	rec := &txRecorder{}
	client := newTestClient(rec)

	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		if txFromContext(ctx) == nil {
			t.Error("expected transaction attached to the callback context")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.begins != 1 || rec.commits != 1 || rec.rollbacks != 0 {
		t.Errorf("expected 1 begin, 1 commit, 0 rollbacks, got %+v", *rec)
	}
}

func TestDBClient_WithTxRollsBackOnError(t *testing.T) {
	rec := &txRecorder{}
	client := newTestClient(rec)

	wantErr := errors.New("insert failed")
	err := client.WithTx(context.Background(), func(context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	if rec.begins != 1 || rec.commits != 0 || rec.rollbacks != 1 {
		t.Errorf("expected 1 begin, 0 commits, 1 rollback, got %+v", *rec)
	}
}

func TestDBClient_WithTxJoinsOuterTransaction(t *testing.T) {
	rec := &txRecorder{}
	client := newTestClient(rec)

	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		return client.WithTx(ctx, func(inner context.Context) error {
			if txFromContext(inner) == nil {
				t.Error("expected the inner callback to see the outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.begins != 1 || rec.commits != 1 {
		t.Errorf("expected a single joined transaction, got %+v", *rec)
	}
}

func TestDBClient_WithTxInnerErrorRollsBackOuter(t *testing.T) {
	rec := &txRecorder{}
	client := newTestClient(rec)

	wantErr := errors.New("membership insert failed")
	err := client.WithTx(context.Background(), func(ctx context.Context) error {
		return client.WithTx(ctx, func(context.Context) error {
			return wantErr
		})
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the inner error, got %v", err)
	}

	if rec.begins != 1 || rec.commits != 0 || rec.rollbacks != 1 {
		t.Errorf("expected the outer transaction rolled back, got %+v", *rec)
	}
}
