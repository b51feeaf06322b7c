// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package property

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

type createRequest struct {
	// OrganizationID switches ownership to an organization the caller
	// belongs to. Absent, the property is held by the caller directly.
	OrganizationID *string  `json:"organization_id" validate:"omitempty,uuid"`
	Address        string   `json:"address" validate:"required"`
	PropertyType   string   `json:"property_type" validate:"required"`
	Furnished      bool     `json:"furnished"`
	SurfaceArea    *float64 `json:"surface_area" validate:"omitempty,gt=0"`
	Rooms          *int     `json:"rooms" validate:"omitempty,gt=0"`
	MaxOccupants   int      `json:"max_occupants" validate:"omitempty,gt=0"`
	Description    *string  `json:"description"`
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
	router.Post("/api/properties", a.create)
	router.Get("/api/properties", a.list)
	router.Get("/api/properties/{id}", a.get)
	router.Put("/api/properties/{id}", a.update)
	router.Delete("/api/properties/{id}", a.delete)
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

	owner := types.DirectOwner(callerID)
	if req.OrganizationID != nil {
		owner = types.OrganizationOwner(*req.OrganizationID)
	}

	p := &types.Property{
		Owner:        owner,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		Furnished:    req.Furnished,
		SurfaceArea:  req.SurfaceArea,
		Rooms:        req.Rooms,
		MaxOccupants: req.MaxOccupants,
		Description:  req.Description,
	}

	newProperty, err := a.service.Create(r.Context(), callerID, p)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, newProperty)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	properties, err := a.service.List(r.Context(), callerID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, properties)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	p, err := a.service.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, p)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var upd types.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}
	if err := a.validate.Struct(upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	p, err := a.service.Update(r.Context(), callerID, chi.URLParam(r, "id"), &upd)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, p)
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
