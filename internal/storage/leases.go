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

const leaseColumns = "id, property_id, tenant_id, start_date, end_date, duration_months, monthly_rent, charges, deposit, rent_revision, inventory_date, status, created_at, updated_at"

func scanLease(row sq.RowScanner) (*types.Lease, error) {
	var l types.Lease
	err := row.Scan(&l.ID, &l.PropertyID, &l.TenantID, &l.StartDate, &l.EndDate, &l.DurationMonths, &l.MonthlyRent, &l.Charges, &l.Deposit, &l.RentRevision, &l.InventoryDate, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Storage) CreateLease(ctx context.Context, l *types.Lease) (*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateLease")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lease ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("leases").
		Columns("id", "property_id", "tenant_id", "start_date", "end_date", "duration_months", "monthly_rent", "charges", "deposit", "rent_revision", "inventory_date", "status").
		Values(id.String(), l.PropertyID, l.TenantID, l.StartDate, l.EndDate, l.DurationMonths, l.MonthlyRent, l.Charges, l.Deposit, l.RentRevision, l.InventoryDate, l.Status).
		Suffix("RETURNING " + leaseColumns).
		QueryRowContext(ctx)

	newLease, err := scanLease(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert lease: %w", err)
	}

	return newLease, nil
}

func (s *Storage) GetLeaseByID(ctx context.Context, id string) (*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetLeaseByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(leaseColumns).
		From("leases").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	l, err := scanLease(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}

	return l, nil
}

// ListLeasesByUserID returns the leases on properties visible to the
// user, optionally narrowed to a single property.
func (s *Storage) ListLeasesByUserID(ctx context.Context, userID string, propertyID *string) ([]*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListLeasesByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("l.id", "l.property_id", "l.tenant_id", "l.start_date", "l.end_date", "l.duration_months", "l.monthly_rent", "l.charges", "l.deposit", "l.rent_revision", "l.inventory_date", "l.status", "l.created_at", "l.updated_at").
		From("leases l").
		Join("properties p ON p.id = l.property_id").
		Where(visibleProperties(userID)).
		OrderBy("l.created_at")

	if propertyID != nil {
		query = query.Where(sq.Eq{"l.property_id": *propertyID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	defer rows.Close()

	var leases []*types.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		leases = append(leases, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leases, nil
}

func (s *Storage) DeleteLease(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteLease")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("leases").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
