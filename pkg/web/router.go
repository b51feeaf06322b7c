// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/quittance/property-service/internal/authorization"
	"github.com/quittance/property-service/internal/db"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/password"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/pkg/auth"
	"github.com/quittance/property-service/pkg/authentication"
	"github.com/quittance/property-service/pkg/lease"
	"github.com/quittance/property-service/pkg/metrics"
	"github.com/quittance/property-service/pkg/organization"
	"github.com/quittance/property-service/pkg/property"
	"github.com/quittance/property-service/pkg/receipt"
	"github.com/quittance/property-service/pkg/status"
	"github.com/quittance/property-service/pkg/tenant"
)

func NewRouter(
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	tokenService *authentication.TokenService,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	authorizer := authorization.NewAuthorizer(s, tracer, monitor, logger)
	hasher := password.NewHasher()

	authAPI := auth.NewAPI(
		auth.NewService(s, hasher, tokenService, tracer, monitor, logger),
		logger,
	)
	organizationAPI := organization.NewAPI(
		organization.NewService(s, authorizer, tracer, monitor, logger),
		logger,
	)
	propertyAPI := property.NewAPI(
		property.NewService(s, authorizer, tracer, monitor, logger),
		logger,
	)
	tenantAPI := tenant.NewAPI(
		tenant.NewService(s, authorizer, tracer, monitor, logger),
		logger,
	)
	leaseAPI := lease.NewAPI(
		lease.NewService(s, authorizer, tracer, monitor, logger),
		logger,
	)
	receiptAPI := receipt.NewAPI(
		receipt.NewService(s, authorizer, tracer, monitor, logger),
		logger,
	)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	authAPI.RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(authentication.NewMiddleware(tokenService, tracer, monitor, logger).Authenticate())
		r.Use(db.TransactionMiddleware(dbClient, logger))

		authAPI.RegisterAuthenticatedEndpoints(r)
		organizationAPI.RegisterEndpoints(r)
		propertyAPI.RegisterEndpoints(r)
		tenantAPI.RegisterEndpoints(r)
		leaseAPI.RegisterEndpoints(r)
		receiptAPI.RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
