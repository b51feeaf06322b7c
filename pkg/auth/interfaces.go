// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the auth package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// HasherInterface abstracts the password hashing engine.
type HasherInterface interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// ServiceInterface defines the account operations.
type ServiceInterface interface {
	Register(ctx context.Context, u *types.User, password string) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	Me(ctx context.Context, userID string) (*types.User, error)
}
