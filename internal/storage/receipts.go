// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/quittance/property-service/internal/types"
)

const receiptColumns = "id, lease_id, period_month, period_year, base_rent, charges, total_amount, payment_date, status, email_sent_at, created_at, updated_at"

func scanReceipt(row sq.RowScanner) (*types.Receipt, error) {
	var r types.Receipt
	err := row.Scan(&r.ID, &r.LeaseID, &r.PeriodMonth, &r.PeriodYear, &r.BaseRent, &r.Charges, &r.TotalAmount, &r.PaymentDate, &r.Status, &r.EmailSentAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReceipt inserts a rent receipt. A second receipt for the same
// lease and period violates the unique constraint and surfaces as
// ErrDuplicateKey.
func (s *Storage) CreateReceipt(ctx context.Context, r *types.Receipt) (*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateReceipt")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("receipts").
		Columns("id", "lease_id", "period_month", "period_year", "base_rent", "charges", "total_amount", "payment_date", "status").
		Values(id.String(), r.LeaseID, r.PeriodMonth, r.PeriodYear, r.BaseRent, r.Charges, r.TotalAmount, r.PaymentDate, r.Status).
		Suffix("RETURNING " + receiptColumns).
		QueryRowContext(ctx)

	newReceipt, err := scanReceipt(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "receipt already exists for this period")
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert receipt: %w", err)
	}

	return newReceipt, nil
}

func (s *Storage) GetReceiptByID(ctx context.Context, id string) (*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetReceiptByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(receiptColumns).
		From("receipts").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	r, err := scanReceipt(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return r, nil
}

// ListReceiptsByUserID returns receipts on leases whose property is
// visible to the user, optionally narrowed to a single lease.
func (s *Storage) ListReceiptsByUserID(ctx context.Context, userID string, leaseID *string) ([]*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListReceiptsByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("r.id", "r.lease_id", "r.period_month", "r.period_year", "r.base_rent", "r.charges", "r.total_amount", "r.payment_date", "r.status", "r.email_sent_at", "r.created_at", "r.updated_at").
		From("receipts r").
		Join("leases l ON l.id = r.lease_id").
		Join("properties p ON p.id = l.property_id").
		Where(visibleProperties(userID)).
		OrderBy("r.period_year DESC", "r.period_month DESC")

	if leaseID != nil {
		query = query.Where(sq.Eq{"r.lease_id": *leaseID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*types.Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return receipts, nil
}
