// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/password"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

// TestRegisterLoginMeFlow drives the full account flow through the
// router: register, then log in with the same credentials, then fetch
// the identity with the issued token. Only storage is mocked; hashing,
// token issuance and the middleware are the real implementations.
func TestRegisterLoginMeFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	logger := logging.NewNoopLogger()

	hasher := password.NewHasher()
	tokenService := authentication.NewTokenService([]byte("test-signing-key"), 24*time.Hour, tracer, nil, logger)

	userID := uuid.NewString()
	var storedHash string

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, u *types.User) (*types.User, error) {
			storedHash = u.PasswordHash
			return &types.User{ID: userID, Email: u.Email, Name: u.Name, Address: u.Address}, nil
		})
	mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "jean@example.com").
		DoAndReturn(func(_ interface{}, _ string) (*types.User, error) {
			return &types.User{ID: userID, Email: "jean@example.com", PasswordHash: storedHash}, nil
		})
	mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).
		Return(&types.User{ID: userID, Email: "jean@example.com", Name: "Jean"}, nil)

	service := NewService(mockStorage, hasher, tokenService, tracer, nil, logger)
	api := NewAPI(service, logger)
	middleware := authentication.NewMiddleware(tokenService, tracer, nil, logger)

	router := chi.NewRouter()
	api.RegisterEndpoints(router)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate())
		api.RegisterAuthenticatedEndpoints(r)
	})

	// Register
	body, _ := json.Marshal(map[string]interface{}{
		"email":    "Jean@Example.COM",
		"password": "longenough",
		"name":     "Jean",
		"address":  "1 rue de la Paix",
	})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var registered sessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &registered); err != nil {
		t.Fatalf("register: failed to decode response: %v", err)
	}
	if registered.Token == "" || registered.User.ID != userID {
		t.Fatalf("register: unexpected response: %+v", registered)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("password")) {
		t.Error("register: response leaks password material")
	}

	// Login
	body, _ = json.Marshal(map[string]string{
		"email":    "jean@example.com",
		"password": "longenough",
	})
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var session sessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("login: failed to decode response: %v", err)
	}

	// Me
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var me types.User
	if err := json.Unmarshal(rr.Body.Bytes(), &me); err != nil {
		t.Fatalf("me: failed to decode response: %v", err)
	}
	if me.ID != userID {
		t.Errorf("me: expected user %s, got %s", userID, me.ID)
	}

	// Me without a token is rejected.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("me without token: expected 401, got %d", rr.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name:    "short password",
			payload: map[string]interface{}{"email": "a@b.fr", "password": "short", "name": "A", "address": "B"},
		},
		{
			name:    "invalid email",
			payload: map[string]interface{}{"email": "not-an-email", "password": "longenough", "name": "A", "address": "B"},
		},
		{
			name:    "missing name",
			payload: map[string]interface{}{"email": "a@b.fr", "password": "longenough", "address": "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// The service must never be reached on invalid input.
			mockService := NewMockServiceInterface(ctrl)
			api := NewAPI(mockService, logging.NewNoopLogger())

			router := chi.NewRouter()
			api.RegisterEndpoints(router)

			body, _ := json.Marshal(tt.payload)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body)))

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}
