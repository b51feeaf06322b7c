// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// tenant package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, id string, upd *types.TenantUpdate) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

// ServiceInterface defines the tenant record operations.
type ServiceInterface interface {
	Create(ctx context.Context, callerID string, t *types.Tenant) (*types.Tenant, error)
	List(ctx context.Context, callerID string) ([]*types.Tenant, error)
	Get(ctx context.Context, callerID, id string) (*types.Tenant, error)
	Update(ctx context.Context, callerID, id string, upd *types.TenantUpdate) (*types.Tenant, error)
	Delete(ctx context.Context, callerID, id string) error
}
