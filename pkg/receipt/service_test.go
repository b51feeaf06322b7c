// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package receipt

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

//go:generate mockgen -build_flags=--mod=mod -package receipt -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package receipt -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package receipt -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package receipt -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

const (
	landlordID = "018f1a2b-0000-7000-8000-000000000001"
	strangerID = "018f1a2b-0000-7000-8000-000000000002"
	propertyID = "018f1a2b-0000-7000-8000-0000000000aa"
	leaseID    = "018f1a2b-0000-7000-8000-0000000000cc"
	receiptID  = "018f1a2b-0000-7000-8000-0000000000dd"
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

func expectLeaseAccess(mockStorage *MockStorageInterface, mockAuthz *authorization.MockAuthorizerInterface, callerID, action string, allowed bool) {
	l := &types.Lease{ID: leaseID, PropertyID: propertyID}
	p := &types.Property{ID: propertyID, Owner: types.DirectOwner(landlordID)}
	mockStorage.EXPECT().GetLeaseByID(gomock.Any(), leaseID).Return(l, nil)
	mockStorage.EXPECT().GetPropertyByID(gomock.Any(), propertyID).Return(p, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.DirectOwner(landlordID), action).Return(allowed, nil)
}

func TestService_CreateComputesTotal(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "receipt.Service.Create")
	defer ctrl.Finish()

	expectLeaseAccess(mockStorage, mockAuthz, landlordID, "receipt.create", true)

	mockStorage.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *types.Receipt) (*types.Receipt, error) {
			if rec.TotalAmount != 1050 {
				t.Errorf("expected total 1050, got %v", rec.TotalAmount)
			}
			if rec.Status != StatusPaid {
				t.Errorf("expected status %q, got %q", StatusPaid, rec.Status)
			}
			rec.ID = receiptID
			return rec, nil
		},
	)

	rec := &types.Receipt{
		LeaseID:     leaseID,
		PeriodMonth: 3,
		PeriodYear:  2025,
		BaseRent:    900,
		Charges:     150,
		// Any client-supplied total is discarded.
		TotalAmount: 1,
		PaymentDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	newReceipt, err := svc.Create(context.Background(), landlordID, rec)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if newReceipt.ID != receiptID {
		t.Errorf("unexpected receipt: %+v", newReceipt)
	}
}

func TestService_CreateDuplicatePeriod(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "receipt.Service.Create")
	defer ctrl.Finish()

	expectLeaseAccess(mockStorage, mockAuthz, landlordID, "receipt.create", true)
	mockStorage.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

	rec := &types.Receipt{LeaseID: leaseID, PeriodMonth: 3, PeriodYear: 2025, BaseRent: 900}
	_, err := svc.Create(context.Background(), landlordID, rec)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestService_CreateOnForeignLease(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "receipt.Service.Create")
	defer ctrl.Finish()

	expectLeaseAccess(mockStorage, mockAuthz, strangerID, "receipt.create", false)

	rec := &types.Receipt{LeaseID: leaseID, PeriodMonth: 3, PeriodYear: 2025}
	_, err := svc.Create(context.Background(), strangerID, rec)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_Get(t *testing.T) {
	stored := &types.Receipt{ID: receiptID, LeaseID: leaseID, TotalAmount: 1050}

	tests := []struct {
		name      string
		callerID  string
		allowed   bool
		expect404 bool
	}{
		{name: "landlord sees the receipt", callerID: landlordID, allowed: true},
		{name: "stranger gets not found", callerID: strangerID, allowed: false, expect404: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStorage, mockAuthz, ctrl := newTestService(t, "receipt.Service.Get")
			defer ctrl.Finish()

			mockStorage.EXPECT().GetReceiptByID(gomock.Any(), receiptID).Return(stored, nil)
			expectLeaseAccess(mockStorage, mockAuthz, tt.callerID, "receipt.read", tt.allowed)

			rec, err := svc.Get(context.Background(), tt.callerID, receiptID)

			if tt.expect404 {
				apiErr := &apierror.Error{}
				if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
					t.Fatalf("expected not found error, got %v", err)
				}
				if apiErr.Message() != "receipt not found" {
					t.Errorf("expected the receipt to read as missing, got %q", apiErr.Message())
				}
				return
			}

			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if rec.ID != receiptID {
				t.Errorf("unexpected receipt: %+v", rec)
			}
		})
	}
}

func TestService_GetMissingReceipt(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "receipt.Service.Get")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetReceiptByID(gomock.Any(), receiptID).Return(nil, storage.ErrNotFound)

	_, err := svc.Get(context.Background(), landlordID, receiptID)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}
