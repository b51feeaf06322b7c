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

const userColumns = "id, email, password_hash, name, address, phone, birth_date, birth_place, created_at, updated_at"

func scanUser(row sq.RowScanner) (*types.User, error) {
	var u types.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Address, &u.Phone, &u.BirthDate, &u.BirthPlace, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "password_hash", "name", "address", "phone", "birth_date", "birth_place").
		Values(id.String(), u.Email, u.PasswordHash, u.Name, u.Address, u.Phone, u.BirthDate, u.BirthPlace).
		Suffix("RETURNING " + userColumns).
		QueryRowContext(ctx)

	newUser, err := scanUser(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return newUser, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns).
		From("users").
		Where(sq.Eq{"email": email}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}
