// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package auth -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage  *MockStorageInterface
	hasher   *MockHasherInterface
	issuer   *authentication.MockTokenIssuerInterface
	security *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, spanName string) (*Service, serviceMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mocks := serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		hasher:   NewMockHasherInterface(ctrl),
		issuer:   authentication.NewMockTokenIssuerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), spanName).Return(ctx, trace.SpanFromContext(ctx))
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().Return(mocks.security).AnyTimes()

	svc := NewService(mocks.storage, mocks.hasher, mocks.issuer, mockTracer, mockMonitor, mockLogger)
	return svc, mocks, ctrl
}

func TestService_Register(t *testing.T) {
	svc, mocks, ctrl := newTestService(t, "auth.Service.Register")
	defer ctrl.Finish()

	stored := &types.User{ID: "user-1", Email: "jean@example.com", Name: "Jean"}

	mocks.hasher.EXPECT().Hash("longenough").Return("$argon2id$encoded", nil)
	mocks.storage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *types.User) (*types.User, error) {
			if u.Email != "jean@example.com" {
				t.Errorf("expected case-folded email, got %q", u.Email)
			}
			if u.PasswordHash != "$argon2id$encoded" {
				t.Errorf("expected hash to be set, got %q", u.PasswordHash)
			}
			return stored, nil
		})
	mocks.issuer.EXPECT().IssueToken(gomock.Any(), "user-1").Return("token-1", nil)
	mocks.security.EXPECT().AuthSuccess("user-1")

	user, token, err := svc.Register(context.Background(), &types.User{Email: "  Jean@Example.COM ", Name: "Jean"}, "longenough")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID != "user-1" || token != "token-1" {
		t.Errorf("unexpected result: user=%v token=%q", user, token)
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, mocks, ctrl := newTestService(t, "auth.Service.Register")
	defer ctrl.Finish()

	mocks.hasher.EXPECT().Hash(gomock.Any()).Return("$argon2id$encoded", nil)
	mocks.storage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

	_, _, err := svc.Register(context.Background(), &types.User{Email: "jean@example.com"}, "longenough")

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	svc, mocks, ctrl := newTestService(t, "auth.Service.Login")
	defer ctrl.Finish()

	stored := &types.User{ID: "user-1", Email: "jean@example.com", PasswordHash: "$argon2id$encoded"}

	mocks.storage.EXPECT().GetUserByEmail(gomock.Any(), "jean@example.com").Return(stored, nil)
	mocks.hasher.EXPECT().Verify("longenough", "$argon2id$encoded").Return(true, nil)
	mocks.issuer.EXPECT().IssueToken(gomock.Any(), "user-1").Return("token-1", nil)
	mocks.security.EXPECT().AuthSuccess("user-1")

	user, token, err := svc.Login(context.Background(), "Jean@Example.com", "longenough")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "user-1" || token != "token-1" {
		t.Errorf("unexpected result: user=%v token=%q", user, token)
	}
}

func TestService_LoginFailuresAreIndistinguishable(t *testing.T) {
	unknownEmail := func(mocks serviceMocks) {
		mocks.storage.EXPECT().GetUserByEmail(gomock.Any(), "jean@example.com").Return(nil, storage.ErrNotFound)
		mocks.security.EXPECT().AuthFailure("")
	}
	wrongPassword := func(mocks serviceMocks) {
		stored := &types.User{ID: "user-1", PasswordHash: "$argon2id$encoded"}
		mocks.storage.EXPECT().GetUserByEmail(gomock.Any(), "jean@example.com").Return(stored, nil)
		mocks.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, nil)
		mocks.security.EXPECT().AuthFailure("user-1")
	}
	verifyError := func(mocks serviceMocks) {
		stored := &types.User{ID: "user-1", PasswordHash: "not-a-digest"}
		mocks.storage.EXPECT().GetUserByEmail(gomock.Any(), "jean@example.com").Return(stored, nil)
		mocks.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, errors.New("malformed digest"))
		mocks.security.EXPECT().AuthFailure("user-1")
	}

	var messages []string
	for name, setup := range map[string]func(serviceMocks){
		"unknown email":  unknownEmail,
		"wrong password": wrongPassword,
		"verify error":   verifyError,
	} {
		t.Run(name, func(t *testing.T) {
			svc, mocks, ctrl := newTestService(t, "auth.Service.Login")
			defer ctrl.Finish()

			setup(mocks)

			_, _, err := svc.Login(context.Background(), "jean@example.com", "whatever")

			apiErr := &apierror.Error{}
			if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusUnauthorized {
				t.Fatalf("expected authentication error, got %v", err)
			}
			messages = append(messages, apiErr.Message())
		})
	}

	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Errorf("failure messages differ: %q vs %q", messages[i], messages[0])
		}
	}
}

func TestService_Me(t *testing.T) {
	svc, mocks, ctrl := newTestService(t, "auth.Service.Me")
	defer ctrl.Finish()

	stored := &types.User{ID: "user-1", Email: "jean@example.com"}
	mocks.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(stored, nil)

	user, err := svc.Me(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("unexpected user: %v", user)
	}
}

func TestService_MeNotFound(t *testing.T) {
	svc, mocks, ctrl := newTestService(t, "auth.Service.Me")
	defer ctrl.Finish()

	mocks.storage.EXPECT().GetUserByID(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)

	_, err := svc.Me(context.Background(), "user-1")

	apiErr := &apierror.Error{}
	if !errors.As(err, &apiErr) || apiErr.StatusCode() != http.StatusNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}
