// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tenant

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

// Create records a tenant for the caller. Tenant records always belong
// to the user that created them, so the owner is never taken from the
// request.
func (s *Service) Create(ctx context.Context, callerID string, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.Create")
	defer span.End()

	t.UserID = callerID

	newTenant, err := s.storage.CreateTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return newTenant, nil
}

func (s *Service) List(ctx context.Context, callerID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.List")
	defer span.End()

	tenants, err := s.storage.ListTenantsByUserID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return tenants, nil
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.Get")
	defer span.End()

	return s.getAccessible(ctx, callerID, id, "tenant.read")
}

func (s *Service) Update(ctx context.Context, callerID, id string, upd *types.TenantUpdate) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.Update")
	defer span.End()

	if _, err := s.getAccessible(ctx, callerID, id, "tenant.update"); err != nil {
		return nil, err
	}

	t, err := s.storage.UpdateTenant(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("tenant not found")
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.Delete")
	defer span.End()

	if _, err := s.getAccessible(ctx, callerID, id, "tenant.delete"); err != nil {
		return err
	}

	if err := s.storage.DeleteTenant(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("tenant not found")
		}
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	return nil
}

// getAccessible loads the tenant and enforces the ownership rule. A
// missing tenant and another user's tenant produce the same not-found
// error, so the response does not reveal which IDs exist.
func (s *Service) getAccessible(ctx context.Context, callerID, id, action string) (*types.Tenant, error) {
	t, err := s.storage.GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	allowed, err := s.authz.CanAccess(ctx, callerID, types.DirectOwner(t.UserID), action)
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, apierror.NewNotFound("tenant not found")
	}

	return t, nil
}
