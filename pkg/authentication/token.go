// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/tracing"
)

// ErrInvalidToken is the only failure VerifyToken returns. Signature
// mismatch, malformed encoding, expiry and a bad subject are deliberately
// indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

var _ TokenVerifierInterface = (*TokenService)(nil)
var _ TokenIssuerInterface = (*TokenService)(nil)

// TokenService issues and validates HS256-signed identity tokens. The
// signing key is fixed at construction; rotating it invalidates every
// token issued before the rotation.
type TokenService struct {
	key      []byte
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (t *TokenService) IssueToken(ctx context.Context, subject string) (string, error) {
	_, span := t.tracer.Start(ctx, "authentication.TokenService.IssueToken")
	defer span.End()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (t *TokenService) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	_, span := t.tracer.Start(ctx, "authentication.TokenService.VerifyToken")
	defer span.End()

	token, err := jwt.ParseWithClaims(
		rawToken,
		&jwt.RegisteredClaims{},
		func(_ *jwt.Token) (interface{}, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		t.logger.Debugf("token validation failed: %v", err)
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	// The subject must be one of our identity IDs.
	if _, err := uuid.Parse(claims.Subject); err != nil {
		t.logger.Debugf("token subject is not a valid ID: %v", err)
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func NewTokenService(
	signingKey []byte,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *TokenService {
	return &TokenService{
		key:      signingKey,
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
