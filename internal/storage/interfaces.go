// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)

	CreateOrganizationWithOwner(ctx context.Context, o *types.Organization, ownerUserID string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, id string, upd *types.OrganizationUpdate) (*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
	IsMember(ctx context.Context, organizationID, userID string) (bool, error)
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	RemoveMember(ctx context.Context, organizationID, membershipID string) error
	ListMembers(ctx context.Context, organizationID string) ([]*types.MemberDetail, error)

	CreateProperty(ctx context.Context, p *types.Property) (*types.Property, error)
	GetPropertyByID(ctx context.Context, id string) (*types.Property, error)
	ListPropertiesByUserID(ctx context.Context, userID string) ([]*types.Property, error)
	UpdateProperty(ctx context.Context, id string, upd *types.PropertyUpdate) (*types.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, id string, upd *types.TenantUpdate) (*types.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error

	CreateLease(ctx context.Context, l *types.Lease) (*types.Lease, error)
	GetLeaseByID(ctx context.Context, id string) (*types.Lease, error)
	ListLeasesByUserID(ctx context.Context, userID string, propertyID *string) ([]*types.Lease, error)
	DeleteLease(ctx context.Context, id string) error

	CreateReceipt(ctx context.Context, r *types.Receipt) (*types.Receipt, error)
	GetReceiptByID(ctx context.Context, id string) (*types.Receipt, error)
	ListReceiptsByUserID(ctx context.Context, userID string, leaseID *string) ([]*types.Receipt, error)
}
