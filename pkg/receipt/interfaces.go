// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package receipt

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// receipt package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateReceipt(ctx context.Context, r *types.Receipt) (*types.Receipt, error)
	GetReceiptByID(ctx context.Context, id string) (*types.Receipt, error)
	ListReceiptsByUserID(ctx context.Context, userID string, leaseID *string) ([]*types.Receipt, error)
	GetLeaseByID(ctx context.Context, id string) (*types.Lease, error)
	GetPropertyByID(ctx context.Context, id string) (*types.Property, error)
}

// ServiceInterface defines the rent receipt operations.
type ServiceInterface interface {
	Create(ctx context.Context, callerID string, r *types.Receipt) (*types.Receipt, error)
	List(ctx context.Context, callerID string, leaseID *string) ([]*types.Receipt, error)
	Get(ctx context.Context, callerID, id string) (*types.Receipt, error)
}
