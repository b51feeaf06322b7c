// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tenant

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

//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

const (
	ownerID    = "018f1a2b-0000-7000-8000-000000000001"
	strangerID = "018f1a2b-0000-7000-8000-000000000002"
	tenantID   = "018f1a2b-0000-7000-8000-0000000000bb"
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

func TestService_CreateAssignsCaller(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "tenant.Service.Create")
	defer ctrl.Finish()

	mockStorage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *types.Tenant) (*types.Tenant, error) {
			if rec.UserID != ownerID {
				t.Errorf("expected tenant owned by %s, got %s", ownerID, rec.UserID)
			}
			rec.ID = tenantID
			return rec, nil
		},
	)

	// The user_id in the payload is ignored, the record always belongs
	// to the caller.
	newTenant, err := svc.Create(context.Background(), ownerID, &types.Tenant{UserID: strangerID, Name: "Jean Martin"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if newTenant.ID != tenantID {
		t.Errorf("unexpected tenant: %+v", newTenant)
	}
}

func TestService_Get(t *testing.T) {
	owned := &types.Tenant{ID: tenantID, UserID: ownerID, Name: "Jean Martin"}

	tests := []struct {
		name      string
		callerID  string
		allowed   bool
		expect404 bool
	}{
		{name: "owner sees the tenant", callerID: ownerID, allowed: true},
		{name: "stranger gets not found", callerID: strangerID, allowed: false, expect404: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStorage, mockAuthz, ctrl := newTestService(t, "tenant.Service.Get")
			defer ctrl.Finish()

			mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(owned, nil)
			mockAuthz.EXPECT().CanAccess(gomock.Any(), tt.callerID, types.DirectOwner(ownerID), "tenant.read").Return(tt.allowed, nil)

			rec, err := svc.Get(context.Background(), tt.callerID, tenantID)

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
			if rec.ID != tenantID {
				t.Errorf("unexpected tenant: %+v", rec)
			}
		})
	}
}

func TestService_GetMissingTenant(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "tenant.Service.Get")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(nil, storage.ErrNotFound)

	_, err := svc.Get(context.Background(), ownerID, tenantID)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_UpdateForeignTenant(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "tenant.Service.Update")
	defer ctrl.Finish()

	owned := &types.Tenant{ID: tenantID, UserID: ownerID}
	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(owned, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), strangerID, types.DirectOwner(ownerID), "tenant.update").Return(false, nil)

	name := "Someone Else"
	_, err := svc.Update(context.Background(), strangerID, tenantID, &types.TenantUpdate{Name: &name})

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "tenant.Service.Delete")
	defer ctrl.Finish()

	owned := &types.Tenant{ID: tenantID, UserID: ownerID}
	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(owned, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), ownerID, types.DirectOwner(ownerID), "tenant.delete").Return(true, nil)
	mockStorage.EXPECT().DeleteTenant(gomock.Any(), tenantID).Return(nil)

	if err := svc.Delete(context.Background(), ownerID, tenantID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
