// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

// newTestRouter mounts the tenant endpoints behind the real
// authentication middleware with the noop verifier, so the bearer
// token doubles as the caller's user ID.
func newTestRouter(service ServiceInterface) chi.Router {
	tracer := tracing.NewTracer(tracing.NewNoopConfig())
	logger := logging.NewNoopLogger()

	middleware := authentication.NewMiddleware(authentication.NewNoopVerifier(), tracer, nil, logger)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate())
		NewAPI(service, logger).RegisterEndpoints(r)
	})
	return router
}

func TestAPI_CreatePassesCallerFromToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockService.EXPECT().Create(gomock.Any(), ownerID, gomock.Any()).
		DoAndReturn(func(_ interface{}, _ string, in *types.Tenant) (*types.Tenant, error) {
			out := *in
			out.ID = tenantID
			out.UserID = ownerID
			return &out, nil
		})

	router := newTestRouter(mockService)

	body, _ := json.Marshal(map[string]interface{}{
		"name":  "Claire Martin",
		"email": "claire@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/tenants", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+ownerID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created types.Tenant
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.UserID != ownerID {
		t.Errorf("expected tenant owner %s, got %s", ownerID, created.UserID)
	}
}

func TestAPI_CreateWithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(NewMockServiceInterface(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/tenants", bytes.NewReader([]byte(`{"name":"Claire Martin"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAPI_UpdateValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		serviceCalled  bool
	}{
		{
			name:           "valid partial update",
			body:           map[string]interface{}{"name": "Claire Durand"},
			expectedStatus: http.StatusOK,
			serviceCalled:  true,
		},
		{
			name:           "empty name rejected",
			body:           map[string]interface{}{"name": ""},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email rejected",
			body:           map[string]interface{}{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			if tt.serviceCalled {
				mockService.EXPECT().Update(gomock.Any(), ownerID, tenantID, gomock.Any()).
					Return(&types.Tenant{ID: tenantID, UserID: ownerID, Name: "Claire Durand"}, nil)
			}

			router := newTestRouter(mockService)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPut, "/api/tenants/"+tenantID, bytes.NewReader(body))
			req.Header.Set("Authorization", "Bearer "+ownerID)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
