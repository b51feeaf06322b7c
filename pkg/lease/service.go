// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package lease

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

const StatusActive = "active"

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

// Create starts a lease on one of the caller's properties with one of
// the caller's tenants. The end date is derived from the start date and
// the duration, and a new lease always starts active.
func (s *Service) Create(ctx context.Context, callerID string, l *types.Lease) (*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "lease.Service.Create")
	defer span.End()

	if err := s.requirePropertyAccess(ctx, callerID, l.PropertyID, "lease.create"); err != nil {
		return nil, err
	}

	t, err := s.storage.GetTenantByID(ctx, l.TenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	allowed, err := s.authz.CanAccess(ctx, callerID, types.DirectOwner(t.UserID), "lease.create")
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, apierror.NewNotFound("tenant not found")
	}

	endDate := l.StartDate.AddDate(0, l.DurationMonths, 0)
	l.EndDate = &endDate
	if l.Status == "" {
		l.Status = StatusActive
	}

	newLease, err := s.storage.CreateLease(ctx, l)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, apierror.NewValidation("unknown property or tenant")
		}
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}

	return newLease, nil
}

func (s *Service) List(ctx context.Context, callerID string, propertyID *string) ([]*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "lease.Service.List")
	defer span.End()

	leases, err := s.storage.ListLeasesByUserID(ctx, callerID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}

	return leases, nil
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*types.Lease, error) {
	ctx, span := s.tracer.Start(ctx, "lease.Service.Get")
	defer span.End()

	return s.getAccessible(ctx, callerID, id, "lease.read")
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "lease.Service.Delete")
	defer span.End()

	if _, err := s.getAccessible(ctx, callerID, id, "lease.delete"); err != nil {
		return err
	}

	if err := s.storage.DeleteLease(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("lease not found")
		}
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	return nil
}

// getAccessible loads the lease and checks access through the property
// it is attached to. A missing lease and a lease on a property the
// caller may not see produce the same not-found error.
func (s *Service) getAccessible(ctx context.Context, callerID, id, action string) (*types.Lease, error) {
	l, err := s.storage.GetLeaseByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("lease not found")
		}
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}

	p, err := s.storage.GetPropertyByID(ctx, l.PropertyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("lease not found")
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	allowed, err := s.authz.CanAccess(ctx, callerID, p.Owner, action)
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return nil, apierror.NewNotFound("lease not found")
	}

	return l, nil
}

func (s *Service) requirePropertyAccess(ctx context.Context, callerID, propertyID, action string) error {
	p, err := s.storage.GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("property not found")
		}
		return fmt.Errorf("failed to get property: %w", err)
	}

	allowed, err := s.authz.CanAccess(ctx, callerID, p.Owner, action)
	if err != nil {
		return fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return apierror.NewNotFound("property not found")
	}

	return nil
}
