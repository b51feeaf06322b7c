// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestAuthorizer_CanAccess(t *testing.T) {
	callerID := "018f1a2b-0000-7000-8000-000000000001"
	otherID := "018f1a2b-0000-7000-8000-000000000002"
	orgID := "018f1a2b-0000-7000-8000-00000000000f"

	testCases := []struct {
		name            string
		owner           types.Owner
		setupMocks      func(*MockMembershipCheckerInterface)
		expectAudit     bool
		expectedAllowed bool
		expectedErr     bool
	}{
		{
			name:            "direct owner - allowed",
			owner:           types.DirectOwner(callerID),
			setupMocks:      func(*MockMembershipCheckerInterface) {},
			expectedAllowed: true,
		},
		{
			name:            "direct owner mismatch - denied",
			owner:           types.DirectOwner(otherID),
			setupMocks:      func(*MockMembershipCheckerInterface) {},
			expectAudit:     true,
			expectedAllowed: false,
		},
		{
			name:  "organization member - allowed",
			owner: types.OrganizationOwner(orgID),
			setupMocks: func(mockChecker *MockMembershipCheckerInterface) {
				mockChecker.EXPECT().IsMember(gomock.Any(), orgID, callerID).Return(true, nil)
			},
			expectedAllowed: true,
		},
		{
			name:  "organization outsider - denied",
			owner: types.OrganizationOwner(orgID),
			setupMocks: func(mockChecker *MockMembershipCheckerInterface) {
				mockChecker.EXPECT().IsMember(gomock.Any(), orgID, callerID).Return(false, nil)
			},
			expectAudit:     true,
			expectedAllowed: false,
		},
		{
			name:  "membership lookup error",
			owner: types.OrganizationOwner(orgID),
			setupMocks: func(mockChecker *MockMembershipCheckerInterface) {
				mockChecker.EXPECT().IsMember(gomock.Any(), orgID, callerID).Return(false, errors.New("storage error"))
			},
			expectedAllowed: false,
			expectedErr:     true,
		},
		{
			name:        "zero owner - error",
			owner:       types.Owner{},
			setupMocks:  func(*MockMembershipCheckerInterface) {},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockChecker := NewMockMembershipCheckerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.CanAccess").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			if tc.expectAudit {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthzFailure(callerID, "resource.read")
			}
			tc.setupMocks(mockChecker)

			a := NewAuthorizer(mockChecker, mockTracer, mockMonitor, mockLogger)

			allowed, err := a.CanAccess(context.Background(), callerID, tc.owner, "resource.read")

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if allowed != tc.expectedAllowed {
				t.Errorf("expected allowed=%v, got %v", tc.expectedAllowed, allowed)
			}
		})
	}
}
