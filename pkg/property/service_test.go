// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package property

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/authorization"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package property -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package property -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package property -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package property -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

const (
	memberID   = "018f1a2b-0000-7000-8000-000000000001"
	strangerID = "018f1a2b-0000-7000-8000-000000000002"
	orgID      = "018f1a2b-0000-7000-8000-00000000000f"
	propertyID = "018f1a2b-0000-7000-8000-0000000000aa"
)

func newTestService(t *testing.T, spanName string) (*Service, *MockStorageInterface, *authorization.MockAuthorizerInterface, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := authorization.NewMockAuthorizerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), spanName).Return(ctx, trace.SpanFromContext(ctx))
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewService(mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)
	return svc, mockStorage, mockAuthz, ctrl
}

func TestService_GetOrganizationOwned(t *testing.T) {
	owned := &types.Property{ID: propertyID, Owner: types.OrganizationOwner(orgID), Address: "1 rue de la Paix"}

	tests := []struct {
		name      string
		callerID  string
		allowed   bool
		expect404 bool
	}{
		{name: "member sees the property", callerID: memberID, allowed: true},
		{name: "stranger gets not found", callerID: strangerID, allowed: false, expect404: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStorage, mockAuthz, ctrl := newTestService(t, "property.Service.Get")
			defer ctrl.Finish()

			mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(owned, nil)
			mockAuthz.EXPECT().CanAccess(gomock.Any(), tt.callerID, types.OrganizationOwner(orgID), "property.read").Return(tt.allowed, nil)

			p, err := svc.Get(context.Background(), tt.callerID, propertyID)

			if tt.expect404 {
				apiErr := &apierror.Error{}
				if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
					t.Fatalf("expected not found error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if p.ID != propertyID {
				t.Errorf("unexpected property: %+v", p)
			}
		})
	}
}

func TestService_GetMissingProperty(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "property.Service.Get")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(nil, storage.ErrNotFound)

	_, err := svc.Get(context.Background(), memberID, propertyID)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_CreateForForeignOrganization(t *testing.T) {
	svc, _, mockAuthz, ctrl := newTestService(t, "property.Service.Create")
	defer ctrl.Finish()

	p := &types.Property{Owner: types.OrganizationOwner(orgID), Address: "1 rue de la Paix"}
	mockAuthz.EXPECT().CanAccess(gomock.Any(), strangerID, types.OrganizationOwner(orgID), "property.create").Return(false, nil)

	_, err := svc.Create(context.Background(), strangerID, p)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_UpdateCannotMoveToForeignOrganization(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "property.Service.Update")
	defer ctrl.Finish()

	owned := &types.Property{ID: propertyID, Owner: types.DirectOwner(memberID)}
	foreign := types.OrganizationOwner(orgID)

	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(owned, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), memberID, types.DirectOwner(memberID), "property.update").Return(true, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), memberID, foreign, "property.update").Return(false, nil)

	_, err := svc.Update(context.Background(), memberID, propertyID, &types.PropertyUpdate{Owner: &foreign})

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "property.Service.Delete")
	defer ctrl.Finish()

	owned := &types.Property{ID: propertyID, Owner: types.DirectOwner(memberID)}
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(owned, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), memberID, types.DirectOwner(memberID), "property.delete").Return(true, nil)
	mockStorage.EXPECT().DeleteProperty(gomock.Any(), propertyID).Return(nil)

	if err := svc.Delete(context.Background(), memberID, propertyID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
