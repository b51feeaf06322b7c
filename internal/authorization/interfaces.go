// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/quittance/property-service/internal/types"
)

// MembershipCheckerInterface answers the single storage question the
// resolver needs: does this user belong to this organization.
type MembershipCheckerInterface interface {
	IsMember(ctx context.Context, organizationID, userID string) (bool, error)
}

type AuthorizerInterface interface {
	CanAccess(ctx context.Context, userID string, owner types.Owner, action string) (bool, error)
}
