// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quittance/property-service/internal/apierror"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/storage"
	"github.com/quittance/property-service/internal/tracing"
	"github.com/quittance/property-service/internal/types"
	"github.com/quittance/property-service/pkg/authentication"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	hasher  HasherInterface
	issuer  authentication.TokenIssuerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	hasher HasherInterface,
	issuer authentication.TokenIssuerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		issuer:  issuer,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Register creates the account and signs the new user in. Emails are
// case-folded before storage so the uniqueness check cannot be dodged
// with capitalization.
func (s *Service) Register(ctx context.Context, u *types.User, password string) (*types.User, string, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Register")
	defer span.End()

	u.Email = normalizeEmail(u.Email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = hash

	newUser, err := s.storage.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, "", apierror.NewConflict("email already registered")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issuer.IssueToken(ctx, newUser.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Security().AuthSuccess(newUser.ID)
	return newUser, token, nil
}

// Login verifies the credentials and issues a token. An unknown email
// and a wrong password produce the same generic failure.
func (s *Service) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Login")
	defer span.End()

	u, err := s.storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthFailure("")
			return nil, "", apierror.NewAuthentication()
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			s.logger.Debugf("password verification errored for user %s: %v", u.ID, err)
		}
		s.logger.Security().AuthFailure(u.ID)
		return nil, "", apierror.NewAuthentication()
	}

	token, err := s.issuer.IssueToken(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Security().AuthSuccess(u.ID)
	return u, token, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Me")
	defer span.End()

	u, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierror.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
