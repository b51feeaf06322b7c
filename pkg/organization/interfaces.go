// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// StorageInterface defines the storage operations required by the
// organization package. It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateOrganizationWithOwner(ctx context.Context, o *types.Organization, ownerUserID string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, id string, upd *types.OrganizationUpdate) (*types.Organization, error)
	DeleteOrganization(ctx context.Context, id string) error
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	RemoveMember(ctx context.Context, organizationID, membershipID string) error
	ListMembers(ctx context.Context, organizationID string) ([]*types.MemberDetail, error)
}

// Detail is an organization together with its member list.
type Detail struct {
	types.Organization
	Members []*types.MemberDetail `json:"members"`
}

// ServiceInterface defines the organization operations.
type ServiceInterface interface {
	Create(ctx context.Context, callerID string, o *types.Organization) (*types.Organization, error)
	List(ctx context.Context, callerID string) ([]*types.Organization, error)
	Get(ctx context.Context, callerID, id string) (*Detail, error)
	Update(ctx context.Context, callerID, id string, upd *types.OrganizationUpdate) (*types.Organization, error)
	Delete(ctx context.Context, callerID, id string) error
	AddMember(ctx context.Context, callerID string, m *types.Membership) (*types.Membership, error)
	ListMembers(ctx context.Context, callerID, organizationID string) ([]*types.MemberDetail, error)
	RemoveMember(ctx context.Context, callerID, organizationID, membershipID string) error
}
