// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package organization

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
	Name      string  `json:"name" validate:"required"`
	LegalForm string  `json:"legal_form" validate:"required"`
	Siret     *string `json:"siret"`
	Address   string  `json:"address" validate:"required"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

type addMemberRequest struct {
	UserID          string   `json:"user_id" validate:"required,uuid"`
	Role            string   `json:"role" validate:"required"`
	SharePercentage *float64 `json:"share_percentage" validate:"omitempty,gte=0,lte=100"`
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
	router.Post("/api/organizations", a.create)
	router.Get("/api/organizations", a.list)
	router.Get("/api/organizations/{id}", a.get)
	router.Put("/api/organizations/{id}", a.update)
	router.Delete("/api/organizations/{id}", a.delete)
	router.Post("/api/organizations/{id}/members", a.addMember)
	router.Get("/api/organizations/{id}/members", a.listMembers)
	router.Delete("/api/organizations/{id}/members/{memberID}", a.removeMember)
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

	org := &types.Organization{
		Name:      req.Name,
		LegalForm: req.LegalForm,
		Siret:     req.Siret,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	newOrg, err := a.service.Create(r.Context(), callerID, org)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, newOrg)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	orgs, err := a.service.List(r.Context(), callerID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, orgs)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	detail, err := a.service.Get(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, detail)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var upd types.OrganizationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}
	if err := a.validate.Struct(upd); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	org, err := a.service.Update(r.Context(), callerID, chi.URLParam(r, "id"), &upd)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, org)
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

func (a *API) addMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	member, err := a.service.AddMember(r.Context(), callerID, &types.Membership{
		OrganizationID:  chi.URLParam(r, "id"),
		UserID:          req.UserID,
		Role:            req.Role,
		SharePercentage: req.SharePercentage,
	})
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, member)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	members, err := a.service.ListMembers(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, members)
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	err := a.service.RemoveMember(r.Context(), callerID, chi.URLParam(r, "id"), chi.URLParam(r, "memberID"))
	if err != nil {
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
