// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

type createRequest struct {
	Name       string     `json:"name" validate:"required"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace *string    `json:"birth_place"`
	Notes      *string    `json:"notes"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate
	logger   logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(router chi.Router) {
	router.Post("/api/tenants", a.create)
	router.Get("/api/tenants", a.list)
	router.Get("/api/tenants/{id}", a.get)
	router.Put("/api/tenants/{id}", a.update)
	router.Delete("/api/tenants/{id}", a.delete)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	t := &types.Tenant{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		BirthDate:  req.BirthDate,
		BirthPlace: req.BirthPlace,
		Notes:      req.Notes,
	}

	newTenant, err := a.service.Create(r.Context(), callerID, t)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, newTenant)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	tenants, err := a.service.List(r.Context(), callerID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, tenants)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	t, err := a.service.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, t)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var upd types.TenantUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}
	if err := a.validate.Struct(upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	t, err := a.service.Update(r.Context(), callerID, chi.URLParam(r, "id"), &upd)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, t)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	if err := a.service.Delete(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger logging.LoggerInterface, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}
