// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package receipt

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

const StatusPaid = "paid"

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

// Create issues a rent receipt on one of the caller's leases. The total
// is always recomputed from the base rent and the charges, and a lease
// can carry at most one receipt per period.
func (s *Service) Create(ctx context.Context, callerID string, r *types.Receipt) (*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.Service.Create")
	defer span.End()

	if err := s.requireLeaseAccess(ctx, callerID, r.LeaseID, "receipt.create"); err != nil {
		return nil, err
	}

	r.TotalAmount = r.BaseRent + r.Charges
	if r.Status == "" {
		r.Status = StatusPaid
	}

	newReceipt, err := s.storage.CreateReceipt(ctx, r)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, apierror.NewConflict("receipt already exists for this period")
		}
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, apierror.NewValidation("unknown lease")
		}
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	return newReceipt, nil
}

func (s *Service) List(ctx context.Context, callerID string, leaseID *string) ([]*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.Service.List")
	defer span.End()

	receipts, err := s.storage.ListReceiptsByUserID(ctx, callerID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return receipts, nil
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*types.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.Service.Get")
	defer span.End()

	r, err := s.storage.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("receipt not found")
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if err := s.requireLeaseAccess(ctx, callerID, r.LeaseID, "receipt.read"); err != nil {
		// A receipt on a foreign lease reads as missing, the same as a
		// receipt that does not exist.
		if apiErr := (&apierror.Error{}); errors.As(err, &apiErr) {
			return nil, apierror.NewNotFound("receipt not found")
		}
		return nil, err
	}

	return r, nil
}

// requireLeaseAccess resolves the lease to its property and checks the
// caller against the property's owner.
func (s *Service) requireLeaseAccess(ctx context.Context, callerID, leaseID, action string) error {
	l, err := s.storage.GetLeaseByID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("lease not found")
		}
		return fmt.Errorf("failed to get lease: %w", err)
	}

	p, err := s.storage.GetPropertyByID(ctx, l.PropertyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("lease not found")
		}
		return fmt.Errorf("failed to get property: %w", err)
	}

	allowed, err := s.authz.CanAccess(ctx, callerID, p.Owner, action)
	if err != nil {
		return fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return apierror.NewNotFound("lease not found")
	}

	return nil
}
