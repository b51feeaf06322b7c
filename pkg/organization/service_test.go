// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package organization

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

//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

const (
	callerID = "018f1a2b-0000-7000-8000-000000000001"
	orgID    = "018f1a2b-0000-7000-8000-00000000000f"
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
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewService(mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)
	return svc, mockStorage, mockAuthz, ctrl
}

func expectNotFound(t *testing.T, err error) {
	t.Helper()
	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestService_Create(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "organization.Service.Create")
	defer ctrl.Finish()

	org := &types.Organization{Name: "SCI Les Tilleuls", LegalForm: "SCI"}
	created := &types.Organization{ID: orgID, Name: "SCI Les Tilleuls", LegalForm: "SCI"}

	mockStorage.EXPECT().CreateOrganizationWithOwner(gomock.Any(), org, callerID).Return(created, nil)

	got, err := svc.Create(context.Background(), callerID, org)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.ID != orgID {
		t.Errorf("expected organization %s, got %s", orgID, got.ID)
	}
}

func TestService_CreateFailure(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "organization.Service.Create")
	defer ctrl.Finish()

	org := &types.Organization{Name: "SCI Les Tilleuls", LegalForm: "SCI"}

	mockStorage.EXPECT().CreateOrganizationWithOwner(gomock.Any(), org, callerID).
		Return(nil, errors.New("failed to insert founding membership"))

	got, err := svc.Create(context.Background(), callerID, org)
	if err == nil {
		t.Fatal("expected an error when the founding membership cannot be inserted")
	}
	if got != nil {
		t.Errorf("expected no organization, got %+v", got)
	}
}

func TestService_Get(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "organization.Service.Get")
	defer ctrl.Finish()

	org := &types.Organization{ID: orgID, Name: "SCI Les Tilleuls"}
	members := []*types.MemberDetail{{MembershipID: "m-1", Role: "owner", UserID: callerID}}

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(org, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.OrganizationOwner(orgID), "organization.read").Return(true, nil)
	mockStorage.EXPECT().ListMembers(gomock.Any(), orgID).Return(members, nil)

	detail, err := svc.Get(context.Background(), callerID, orgID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.ID != orgID || len(detail.Members) != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestService_GetDeniedAsNotFound(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "organization.Service.Get")
	defer ctrl.Finish()

	org := &types.Organization{ID: orgID}
	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(org, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.OrganizationOwner(orgID), "organization.read").Return(false, nil)

	_, err := svc.Get(context.Background(), callerID, orgID)
	expectNotFound(t, err)
}

func TestService_GetMissingOrganization(t *testing.T) {
	svc, mockStorage, _, ctrl := newTestService(t, "organization.Service.Get")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(nil, storage.ErrNotFound)

	_, err := svc.Get(context.Background(), callerID, orgID)
	expectNotFound(t, err)
}

func TestService_AddMember(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "organization.Service.AddMember")
	defer ctrl.Finish()

	share := 40.0
	m := &types.Membership{OrganizationID: orgID, UserID: "user-2", Role: "member", SharePercentage: &share}
	added := &types.Membership{ID: "m-2", OrganizationID: orgID, UserID: "user-2", Role: "member", SharePercentage: &share}

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(&types.Organization{ID: orgID}, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.OrganizationOwner(orgID), "organization.members.add").Return(true, nil)
	mockStorage.EXPECT().AddMember(gomock.Any(), m).Return(added, nil)

	got, err := svc.AddMember(context.Background(), callerID, m)
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if got.ID != "m-2" {
		t.Errorf("unexpected membership: %+v", got)
	}
}

func TestService_RemoveMemberNotFound(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "organization.Service.RemoveMember")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(&types.Organization{ID: orgID}, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.OrganizationOwner(orgID), "organization.members.remove").Return(true, nil)
	mockStorage.EXPECT().RemoveMember(gomock.Any(), orgID, "m-404").Return(storage.ErrNotFound)

	err := svc.RemoveMember(context.Background(), callerID, orgID, "m-404")
	expectNotFound(t, err)
}

func TestService_DeleteStillOwningProperties(t *testing.T) {
	svc, mockStorage, mockAuthz, ctrl := newTestService(t, "organization.Service.Delete")
	defer ctrl.Finish()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(&types.Organization{ID: orgID}, nil)
	mockAuthz.EXPECT().CanAccess(gomock.Any(), callerID, types.OrganizationOwner(orgID), "organization.delete").Return(true, nil)
	mockStorage.EXPECT().DeleteOrganization(gomock.Any(), orgID).Return(storage.ErrForeignKeyViolation)

	err := svc.Delete(context.Background(), callerID, orgID)

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}
