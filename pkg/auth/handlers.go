// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package auth

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

type registerRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	Name       string     `json:"name" validate:"required"`
	Address    string     `json:"address" validate:"required"`
	Phone      *string    `json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	BirthPlace *string    `json:"birth_place"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
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

// RegisterEndpoints attaches the public account routes.
func (a *API) RegisterEndpoints(router chi.Router) {
	router.Post("/api/auth/register", a.register)
	router.Post("/api/auth/login", a.login)
}

// RegisterAuthenticatedEndpoints attaches the routes that require a
// verified caller identity.
func (a *API) RegisterAuthenticatedEndpoints(router chi.Router) {
	router.Get("/api/auth/me", a.me)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}

	if err := a.validate.Struct(req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	user := &types.User{
		Email:      req.Email,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		BirthPlace: req.BirthPlace,
	}

	newUser, token, err := a.service.Register(r.Context(), user, req.Password)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusCreated, sessionResponse{Token: token, User: newUser})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation("invalid request body"))
		return
	}

	if err := a.validate.Struct(req); err != nil {
		apierror.WriteJSON(w, a.logger, apierror.NewValidation(err.Error()))
		return
	}

	user, token, err := a.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, sessionResponse{Token: token, User: user})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		apierror.WriteJSON(w, a.logger, apierror.NewAuthentication())
		return
	}

	user, err := a.service.Me(r.Context(), userID)
	if err != nil {
		apierror.WriteJSON(w, a.logger, err)
		return
	}

	writeJSON(w, a.logger, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, logger logging.LoggerInterface, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}
