// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package lease

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/authorization"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package lease -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package lease -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package lease -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package lease -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

const (
	landlordID = "018f1a2b-0000-7000-8000-000000000001"
	strangerID = "018f1a2b-0000-7000-8000-000000000002"
	propertyID = "018f1a2b-0000-7000-8000-0000000000aa"
	tenantID   = "018f1a2b-0000-7000-8000-0000000000bb"
	leaseID    = "018f1a2b-0000-7000-8000-0000000000cc"
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

func TestService_CreateDerivesEndDate(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "lease.Service.Create")
	defer ctrl.Finish()

	property := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(property, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), landlordID, types.DirectOwner(landlordID), "lease.create").Return(true, nil)

	tenant := &types.Tenant{ID: tenantID, UserID: landlordID}
	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(tenant, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), landlordID, types.DirectOwner(landlordID), "lease.create").Return(true, nil)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	mockStorage.EXPECT().CreateLease(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l *types.Lease) (*types.Lease, error) {
			if l.EndDate == nil || !l.EndDate.Equal(wantEnd) {
				t.Errorf("expected end date %v, got %v", wantEnd, l.EndDate)
			}
			if l.Status != StatusActive {
				t.Errorf("expected status %q, got %q", StatusActive, l.Status)
			}
			l.ID = leaseID
			return l, nil
		},
	)

	l := &types.Lease{PropertyID: propertyID, TenantID: tenantID, StartDate: start, DurationMonths: 12, MonthlyRent: 900}
	newLease, err := svc.Create(context.Background(), landlordID, l)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if newLease.ID != leaseID {
		t.Errorf("unexpected lease: %+v", newLease)
	}
}

func TestService_CreateOnForeignProperty(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "lease.Service.Create")
	defer ctrl.Finish()

	property := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(property, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), strangerID, types.DirectOwner(landlordID), "lease.create").Return(false, nil)

	l := &types.Lease{PropertyID: propertyID, TenantID: tenantID, StartDate: time.Now(), DurationMonths: 12}
	_, err := svc.Create(context.Background(), strangerID, l)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_CreateWithForeignTenant(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "lease.Service.Create")
	defer ctrl.Finish()

	property := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(property, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), landlordID, types.DirectOwner(landlordID), "lease.create").Return(true, nil)

	tenant := &types.Tenant{ID: tenantID, UserID: strangerID}
	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(tenant, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), landlordID, types.DirectOwner(strangerID), "lease.create").Return(false, nil)

	l := &types.Lease{PropertyID: propertyID, TenantID: tenantID, StartDate: time.Now(), DurationMonths: 12}
	_, err := svc.Create(context.Background(), landlordID, l)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_Get(t *testing.T) {
	l := &types.Lease{ID: leaseID, PropertyID: propertyID, TenantID: tenantID}
	property := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}

	tests := []struct {
		name      string
		callerID  string
		allowed   bool
		expect404 bool
	}{
		{name: "landlord sees the lease", callerID: landlordID, allowed: true},
		{name: "stranger gets not found", callerID: strangerID, allowed: false, expect404: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStorage, mockAuthz, ctrl := newTestService(t, "lease.Service.Get")
			defer ctrl.Finish()

			mockStorage.EXPECT().GetLeaseByID(gomock.Any(), leaseID).Return(l, nil)
			mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(property, nil)
			mockAuthz.EXPECT().CanAccess(gomock.Any(), tt.callerID, types.DirectOwner(landlordID), "lease.read").Return(tt.allowed, nil)

			got, err := svc.Get(context.Background(), tt.callerID, leaseID)

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
			if got.ID != leaseID {
				t.Errorf("unexpected lease: %+v", got)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "lease.Service.Delete")
	defer ctrl.Finish()

	l := &types.Lease{ID: leaseID, PropertyID: propertyID}
	property := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}
	mockStorage.EXPECT().GetLeaseByID(gomock.Any(), leaseID).Return(l, nil)
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(property, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), landlordID, types.DirectOwner(landlordID), "lease.delete").Return(true, nil)
	mockStorage.EXPECT().DeleteLease(gomock.Any(), leaseID).Return(nil)

	if err := svc.Delete(context.Background(), landlordID, leaseID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestService_GetMissingLease(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "lease.Service.Get")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetLeaseByID(gomock.Any(), leaseID).Return(nil, storage.ErrNotFound)

	_, err := svc.Get(context.Background(), landlordID, leaseID)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}
