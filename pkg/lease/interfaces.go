// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package lease

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// lease package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateLease(ctx context.Context, l *types.Lease) (*types.Lease, error)
	GetLeaseByID(ctx context.Context, id string) (*types.Lease, error)
	ListLeasesByUserID(ctx context.Context, userID string, propertyID *string) ([]*types.Lease, error)
	DeleteLease(ctx context.Context, id string) error
	GetPropertyByID(ctx context.Context, id string) (*types.Property, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
}

// ServiceInterface defines the lease operations.
type ServiceInterface interface {
	Create(ctx context.Context, callerID string, l *types.Lease) (*types.Lease, error)
	List(ctx context.Context, callerID string, propertyID *string) ([]*types.Lease, error)
	Get(ctx context.Context, callerID, id string) (*types.Lease, error)
	Delete(ctx context.Context, callerID, id string) error
}
