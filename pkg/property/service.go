// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package property

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

// Create records a property for the caller. When the owner is an
// organization the caller must belong to it; assigning a property to a
// foreign user or organization is rejected the same way as reading one.
func (s *Service) Create(ctx context.Context, callerID string, p *types.Property) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "property.Service.Create")
	defer span.End()

	if err := s.requireAccess(ctx, callerID, p.Owner, "property.create"); err != nil {
		return nil, err
	}

	newProperty, err := s.storage.CreateProperty(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, apierror.NewValidation("unknown owner")
		}
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	return newProperty, nil
}

func (s *Service) List(ctx context.Context, callerID string) ([]*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "property.Service.List")
	defer span.End()

	properties, err := s.storage.ListPropertiesByUserID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	return properties, nil
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "property.Service.Get")
	defer span.End()

	return s.getAccessible(ctx, callerID, id, "property.read")
}

func (s *Service) Update(ctx context.Context, callerID, id string, upd *types.PropertyUpdate) (*types.Property, error) {
	ctx, span := s.tracer.Start(ctx, "property.Service.Update")
	defer span.End()

	if _, err := s.getAccessible(ctx, callerID, id, "property.update"); err != nil {
		return nil, err
	}

	// Handing the property to a new owner also requires access to that
	// owner, so a caller cannot push a property into a foreign
	// organization.
	if upd.Owner != nil {
		if err := s.requireAccess(ctx, callerID, *upd.Owner, "property.update"); err != nil {
			return nil, err
		}
	}

	p, err := s.storage.UpdateProperty(ctx, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("property not found")
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "property.Service.Delete")
	defer span.End()

	if _, err := s.getAccessible(ctx, callerID, id, "property.delete"); err != nil {
		return err
	}

	if err := s.storage.DeleteProperty(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierror.NewNotFound("property not found")
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}

	return nil
}

// getAccessible loads the property and enforces the ownership rule. A
// missing property and a property the caller may not see produce the
// same not-found error, so the response does not reveal which IDs exist.
func (s *Service) getAccessible(ctx context.Context, callerID, id, action string) (*types.Property, error) {
	p, err := s.storage.GetPropertyByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("property not found")
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	if err := s.requireAccess(ctx, callerID, p.Owner, action); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) requireAccess(ctx context.Context, callerID string, owner types.Owner, action string) error {
	allowed, err := s.authz.CanAccess(ctx, callerID, owner, action)
	if err != nil {
		return fmt.Errorf("failed to check access: %w", err)
	}
	if !allowed {
		return apierror.NewNotFound("property not found")
	}
	return nil
}
