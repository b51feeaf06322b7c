// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string.
	// Returns the subject (user ID) if the token is valid, otherwise an error.
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

type TokenIssuerInterface interface {
	// IssueToken signs a token for the given subject, valid for the
	// configured lifetime.
	IssueToken(ctx context.Context, subject string) (string, error)
}
