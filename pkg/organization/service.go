// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"errors"
	"fmt"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/authorization"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	authz   authorization.AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz authorization.AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		authz:   authz,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Create provisions the organization with the caller as founding owner.
// The organization row and the owner membership are written atomically.
func (s *Service) Create(ctx context.Context, callerID string, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Create")
	defer span.End()

	newOrg, err := s.storage.CreateOrganizationWithOwner(ctx, o, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.logger.Infof("organization %s created by user %s", newOrg.ID, callerID)
	return newOrg, nil
}

func (s *Service) List(ctx context.Context, callerID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.List")
	defer span.End()

	orgs, err := s.storage.ListOrganizationsByUserID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	return orgs, nil
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*Detail, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Get")
	defer span.End()

	o, err := s.requireMemberAccess(ctx, callerID, id, "organization.read")
	if err != nil {
		return nil, err
	}

	members, err := s.storage.ListMembers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &Detail{Organization: *o, Members: members}, nil
}

func (s *Service) Update(ctx context.Context, callerID, id string, upd *types.OrganizationUpdate) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Update")
	defer span.End()

	if _, err := s.requireMemberAccess(ctx, callerID, id, "organization.update"); err != nil {
		return nil, err
	}

	o, err := s.storage.UpdateOrganization(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("organization not found")
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return o, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.Delete")
	defer span.End()

	if _, err := s.requireMemberAccess(ctx, callerID, id, "organization.delete"); err != nil {
		return err
	}

	if err := s.storage.DeleteOrganization(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return apierror.NewNotFound("organization not found")
		case errors.Is(err, storage.ErrForeignKeyViolation):
			return apierror.NewConflict("organization still owns properties")
		}
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}

func (s *Service) AddMember(ctx context.Context, callerID string, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.AddMember")
	defer span.End()

	if _, err := s.requireMemberAccess(ctx, callerID, m.OrganizationID, "organization.members.add"); err != nil {
		return nil, err
	}

	member, err := s.storage.AddMember(ctx, m)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, apierror.NewValidation("unknown user or organization")
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

func (s *Service) ListMembers(ctx context.Context, callerID, organizationID string) ([]*types.MemberDetail, error) {
	ctx, span := s.tracer.Start(ctx, "organization.Service.ListMembers")
	defer span.End()

	if _, err := s.requireMemberAccess(ctx, callerID, organizationID, "organization.members.list"); err != nil {
		return nil, err
	}

	members, err := s.storage.ListMembers(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, callerID, organizationID, membershipID string) error {
	ctx, span := s.tracer.Start(ctx, "organization.Service.RemoveMember")
	defer span.End()

	if _, err := s.requireMemberAccess(ctx, callerID, organizationID, "organization.members.remove"); err != nil {
		return err
	}

	if err := s.storage.RemoveMember(ctx, organizationID, membershipID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("member not found")
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// requireMemberAccess loads the organization and checks that the caller
// belongs to it. A missing organization and a denied caller both come
// back as the same not-found error.
func (s *Service) requireMemberAccess(ctx context.Context, callerID, organizationID, action string) (*types.Organization, error) {
	o, err := s.storage.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("organization not found")
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	allowed, err := s.authz.CanAccess(ctx, callerID, types.OrganizationOwner(organizationID), action)
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, apierror.NewNotFound("organization not found")
	}

	return o, nil
}
