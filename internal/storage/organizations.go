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

const (
	organizationColumns = "id, name, legal_form, siret, address, phone, email, created_at, updated_at"

	// RoleOwner is the membership role granted to the user that creates
	// an organization.
	RoleOwner = "owner"
)

func scanOrganization(row sq.RowScanner) (*types.Organization, error) {
	var o types.Organization
	err := row.Scan(&o.ID, &o.Name, &o.LegalForm, &o.Siret, &o.Address, &o.Phone, &o.Email, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrganizationWithOwner inserts the organization and its founding
// owner membership in a single transaction. Either both rows exist
// afterwards or neither does.
func (s *Storage) CreateOrganizationWithOwner(ctx context.Context, o *types.Organization, ownerUserID string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganizationWithOwner")
	defer span.End()

	var created *types.Organization
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate organization ID: %w", err)
		}

		row := s.db.Statement(txCtx).
			Insert("organizations").
			Columns("id", "name", "legal_form", "siret", "address", "phone", "email").
			Values(id.String(), o.Name, o.LegalForm, o.Siret, o.Address, o.Phone, o.Email).
			Suffix("RETURNING " + organizationColumns).
			QueryRowContext(txCtx)

		created, err = scanOrganization(row)
		if err != nil {
			return fmt.Errorf("failed to insert organization: %w", err)
		}

		_, err = s.insertMembership(txCtx, &types.Membership{
			OrganizationID:  created.ID,
			UserID:          ownerUserID,
			Role:            RoleOwner,
			SharePercentage: nil,
		})
		if err != nil {
			return fmt.Errorf("failed to insert founding membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(organizationColumns).
		From("organizations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	o, err := scanOrganization(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return o, nil
}

func (s *Storage) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("o.id", "o.name", "o.legal_form", "o.siret", "o.address", "o.phone", "o.email", "o.created_at", "o.updated_at").
		Distinct().
		From("organizations o").
		Join("organization_members m ON o.id = m.organization_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("o.created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.Organization
	for rows.Next() {
		var o types.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.LegalForm, &o.Siret, &o.Address, &o.Phone, &o.Email, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}

// UpdateOrganization applies the non-nil fields of upd. Absent fields
// keep their stored value through COALESCE.
func (s *Storage) UpdateOrganization(ctx context.Context, id string, upd *types.OrganizationUpdate) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateOrganization")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("organizations").
		Set("name", sq.Expr("COALESCE(?, name)", upd.Name)).
		Set("legal_form", sq.Expr("COALESCE(?, legal_form)", upd.LegalForm)).
		Set("siret", sq.Expr("COALESCE(?, siret)", upd.Siret)).
		Set("address", sq.Expr("COALESCE(?, address)", upd.Address)).
		Set("phone", sq.Expr("COALESCE(?, phone)", upd.Phone)).
		Set("email", sq.Expr("COALESCE(?, email)", upd.Email)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + organizationColumns).
		QueryRowContext(ctx)

	o, err := scanOrganization(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return o, nil
}

func (s *Storage) DeleteOrganization(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteOrganization")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("organizations").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		// Deleting is blocked while the organization still owns properties.
		return WrapForeignKeyError(err, "organization still owns resources")
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

func (s *Storage) IsMember(ctx context.Context, organizationID, userID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IsMember")
	defer span.End()

	var one int
	err := s.db.Statement(ctx).
		Select("1").
		From("organization_members").
		Where(sq.Eq{
			"organization_id": organizationID,
			"user_id":         userID,
		}).
		Limit(1).
		QueryRowContext(ctx).
		Scan(&one)

	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}

// AddMember records a membership. Duplicate (organization, user) pairs
// are permitted: the same user may hold several membership rows with
// different roles or shares.
func (s *Storage) AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	member, err := s.insertMembership(ctx, m)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

func (s *Storage) insertMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	var member types.Membership
	err = s.db.Statement(ctx).
		Insert("organization_members").
		Columns("id", "organization_id", "user_id", "role", "share_percentage").
		Values(id.String(), m.OrganizationID, m.UserID, m.Role, m.SharePercentage).
		Suffix("RETURNING id, organization_id, user_id, role, share_percentage, joined_at").
		QueryRowContext(ctx).
		Scan(&member.ID, &member.OrganizationID, &member.UserID, &member.Role, &member.SharePercentage, &member.JoinedAt)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// RemoveMember deletes a membership row scoped to its organization, so
// a membership ID belonging to another organization is not found rather
// than removed.
func (s *Storage) RemoveMember(ctx context.Context, organizationID, membershipID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("organization_members").
		Where(sq.Eq{
			"id":              membershipID,
			"organization_id": organizationID,
		}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
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

func (s *Storage) ListMembers(ctx context.Context, organizationID string) ([]*types.MemberDetail, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("m.id", "m.role", "m.share_percentage", "u.id", "u.name", "u.email").
		From("organization_members m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.organization_id": organizationID}).
		OrderBy("m.share_percentage DESC NULLS LAST", "m.joined_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.MemberDetail
	for rows.Next() {
		var m types.MemberDetail
		if err := rows.Scan(&m.MembershipID, &m.Role, &m.SharePercentage, &m.UserID, &m.UserName, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
