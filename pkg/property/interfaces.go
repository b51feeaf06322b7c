// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package property

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// property package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateProperty(ctx context.Context, p *types.Property) (*types.Property, error)
	GetPropertyByID(ctx context.Context, id string) (*types.Property, error)
	ListPropertiesByUserID(ctx context.Context, userID string) ([]*types.Property, error)
	UpdateProperty(ctx context.Context, id string, upd *types.PropertyUpdate) (*types.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

// ServiceInterface defines the property operations.
type ServiceInterface interface {
	Create(ctx context.Context, callerID string, p *types.Property) (*types.Property, error)
	List(ctx context.Context, callerID string) ([]*types.Property, error)
	Get(ctx context.Context, callerID, id string) (*types.Property, error)
	Update(ctx context.Context, callerID, id string, upd *types.PropertyUpdate) (*types.Property, error)
	Delete(ctx context.Context, callerID, id string) error
}
