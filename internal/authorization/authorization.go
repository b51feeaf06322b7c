// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	checker MembershipCheckerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CanAccess resolves whether userID may act on a resource held by
// owner. A directly held resource is accessible to its owner only; an
// organization-held resource is accessible to every member of that
// organization. Denials are audited with the attempted action.
func (a *Authorizer) CanAccess(ctx context.Context, userID string, owner types.Owner, action string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanAccess")
	defer span.End()

	var allowed bool
	switch owner.Kind() {
	case types.OwnerDirect:
		allowed = owner.ID() == userID
	case types.OwnerOrganization:
		var err error
		allowed, err = a.checker.IsMember(ctx, owner.ID(), userID)
		if err != nil {
			return false, err
		}
	default:
		return false, types.ErrInvalidOwner
	}

	if !allowed {
		a.logger.Security().AuthzFailure(userID, action)
	}

	return allowed, nil
}

func NewAuthorizer(checker MembershipCheckerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.checker = checker
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
