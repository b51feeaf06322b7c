// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package receipt

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
	LeaseID     string    `json:"lease_id" validate:"required,uuid"`
	PeriodMonth int       `json:"period_month" validate:"required,gte=1,lte=12"`
	PeriodYear  int       `json:"period_year" validate:"required,gte=1900"`
	BaseRent    float64   `json:"base_rent" validate:"gte=0"`
	Charges     float64   `json:"charges" validate:"gte=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
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
	router.Post("/api/receipts", a.create)
	router.Get("/api/receipts", a.list)
	router.Get("/api/receipts/{id}", a.get)
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

	rec := &types.Receipt{
		LeaseID:     req.LeaseID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		BaseRent:    req.BaseRent,
		Charges:     req.Charges,
		PaymentDate: req.PaymentDate,
	}

	newReceipt, err := a.service.Create(r.Context(), callerID, rec)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, newReceipt)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var leaseID *string
	if v := r.URL.Query().Get("lease_id"); v != "" {
		leaseID = &v
	}

	receipts, err := a.service.List(r.Context(), callerID, leaseID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, receipts)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	rec, err := a.service.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, logger logging.LoggerInterface, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}
