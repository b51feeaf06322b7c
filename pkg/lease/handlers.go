// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package lease

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
	PropertyID     string     `json:"property_id" validate:"required,uuid"`
	TenantID       string     `json:"tenant_id" validate:"required,uuid"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	DurationMonths int        `json:"duration_months" validate:"required,gt=0"`
	MonthlyRent    float64    `json:"monthly_rent" validate:"gte=0"`
	Charges        float64    `json:"charges" validate:"gte=0"`
	Deposit        float64    `json:"deposit" validate:"gte=0"`
	RentRevision   bool       `json:"rent_revision"`
	InventoryDate  *time.Time `json:"inventory_date"`
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
	router.Post("/api/leases", a.create)
	router.Get("/api/leases", a.list)
	router.Get("/api/leases/{id}", a.get)
	router.Delete("/api/leases/{id}", a.delete)
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

	l := &types.Lease{
		PropertyID:     req.PropertyID,
		TenantID:       req.TenantID,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
		MonthlyRent:    req.MonthlyRent,
		Charges:        req.Charges,
		Deposit:        req.Deposit,
		RentRevision:   req.RentRevision,
		InventoryDate:  req.InventoryDate,
	}

	newLease, err := a.service.Create(r.Context(), callerID, l)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, newLease)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var propertyID *string
	if v := r.URL.Query().Get("property_id"); v != "" {
		propertyID = &v
	}

	leases, err := a.service.List(r.Context(), callerID, propertyID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, leases)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	l, err := a.service.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, l)
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
