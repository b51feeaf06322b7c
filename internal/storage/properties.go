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

const propertyColumns = "id, user_id, organization_id, address, property_type, furnished, surface_area, rooms, max_occupants, description, created_at, updated_at"

func scanProperty(row sq.RowScanner) (*types.Property, error) {
	var (
		p             types.Property
		userID, orgID *string
	)
	err := row.Scan(&p.ID, &userID, &orgID, &p.Address, &p.PropertyType, &p.Furnished, &p.SurfaceArea, &p.Rooms, &p.MaxOccupants, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Owner, err = types.OwnerFromColumns(userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.ID, err)
	}

	return &p, nil
}

// visibleProperties restricts a query on "properties p" to the rows the
// user may see: directly owned, or owned by an organization the user is
// a member of. A single predicate keeps list and count queries in one
// round trip.
func visibleProperties(userID string) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"p.user_id": userID},
		sq.Expr("p.organization_id IN "+memberOrganizations, userID),
	}
}

func (s *Storage) CreateProperty(ctx context.Context, p *types.Property) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateProperty")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate property ID: %w", err)
	}

	userID, orgID := p.Owner.Columns()
	if userID == nil && orgID == nil {
		return nil, types.ErrInvalidOwner
	}

	row := s.db.Statement(ctx).
		Insert("properties").
		Columns("id", "user_id", "organization_id", "address", "property_type", "furnished", "surface_area", "rooms", "max_occupants", "description").
		Values(id.String(), userID, orgID, p.Address, p.PropertyType, p.Furnished, p.SurfaceArea, p.Rooms, p.MaxOccupants, p.Description).
		Suffix("RETURNING " + propertyColumns).
		QueryRowContext(ctx)

	newProperty, err := scanProperty(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	return newProperty, nil
}

func (s *Storage) GetPropertyByID(ctx context.Context, id string) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPropertyByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(propertyColumns).
		From("properties").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	p, err := scanProperty(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return p, nil
}

func (s *Storage) ListPropertiesByUserID(ctx context.Context, userID string) ([]*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPropertiesByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("p.id", "p.user_id", "p.organization_id", "p.address", "p.property_type", "p.furnished", "p.surface_area", "p.rooms", "p.max_occupants", "p.description", "p.created_at", "p.updated_at").
		From("properties p").
		Where(visibleProperties(userID)).
		OrderBy("p.created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*types.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return properties, nil
}

// UpdateProperty applies the non-nil fields of upd. Changing the owner
// rewrites both owner columns at once so a row never ends up with two
// owners or none.
func (s *Storage) UpdateProperty(ctx context.Context, id string, upd *types.PropertyUpdate) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateProperty")
	defer span.End()

	query := s.db.Statement(ctx).
		Update("properties").
		Set("address", sq.Expr("COALESCE(?, address)", upd.Address)).
		Set("property_type", sq.Expr("COALESCE(?, property_type)", upd.PropertyType)).
		Set("furnished", sq.Expr("COALESCE(?, furnished)", upd.Furnished)).
		Set("surface_area", sq.Expr("COALESCE(?, surface_area)", upd.SurfaceArea)).
		Set("rooms", sq.Expr("COALESCE(?, rooms)", upd.Rooms)).
		Set("max_occupants", sq.Expr("COALESCE(?, max_occupants)", upd.MaxOccupants)).
		Set("description", sq.Expr("COALESCE(?, description)", upd.Description)).
		Set("updated_at", sq.Expr("NOW()"))

	if upd.Owner != nil {
		userID, orgID := upd.Owner.Columns()
		if userID == nil && orgID == nil {
			return nil, types.ErrInvalidOwner
		}
		query = query.Set("user_id", userID).Set("organization_id", orgID)
	}

	row := query.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + propertyColumns).
		QueryRowContext(ctx)

	p, err := scanProperty(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return p, nil
}

func (s *Storage) DeleteProperty(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteProperty")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("properties").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
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
