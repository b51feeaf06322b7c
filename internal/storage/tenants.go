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

const tenantColumns = "id, user_id, name, email, phone, address, birth_date, birth_place, notes, created_at, updated_at"

func scanTenant(row sq.RowScanner) (*types.Tenant, error) {
	var t types.Tenant
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &t.Phone, &t.Address, &t.BirthDate, &t.BirthPlace, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "user_id", "name", "email", "phone", "address", "birth_date", "birth_place", "notes").
		Values(id.String(), t.UserID, t.Name, t.Email, t.Phone, t.Address, t.BirthDate, t.BirthPlace, t.Notes).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx)

	newTenant, err := scanTenant(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return newTenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func (s *Storage) ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenantsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tenants, nil
}

// UpdateTenant applies the non-nil fields of upd, leaving the rest
// untouched through COALESCE.
func (s *Storage) UpdateTenant(ctx context.Context, id string, upd *types.TenantUpdate) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenant")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("tenants").
		Set("name", sq.Expr("COALESCE(?, name)", upd.Name)).
		Set("email", sq.Expr("COALESCE(?, email)", upd.Email)).
		Set("phone", sq.Expr("COALESCE(?, phone)", upd.Phone)).
		Set("address", sq.Expr("COALESCE(?, address)", upd.Address)).
		Set("birth_date", sq.Expr("COALESCE(?, birth_date)", upd.BirthDate)).
		Set("birth_place", sq.Expr("COALESCE(?, birth_place)", upd.BirthPlace)).
		Set("notes", sq.Expr("COALESCE(?, notes)", upd.Notes)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	return t, nil
}

func (s *Storage) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTenant")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tenants").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
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
