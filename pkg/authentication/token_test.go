// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/tracing"
)

func newTestTokenService(key string, lifetime time.Duration) *TokenService {
	return NewTokenService(
		[]byte(key),
		lifetime,
		tracing.NewTracer(tracing.NewNoopConfig()),
		nil,
		logging.NewNoopLogger(),
	)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService("test-signing-key", 24*time.Hour)
	subject := uuid.NewString()

	token, err := svc.IssueToken(context.Background(), subject)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	got, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if got != subject {
		t.Errorf("expected subject %s, got %s", subject, got)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestTokenService("test-signing-key", -time.Minute)

	token, err := svc.IssueToken(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := svc.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := newTestTokenService("key-one", 24*time.Hour)
	verifier := newTestTokenService("key-two", 24*time.Hour)

	token, err := issuer.IssueToken(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign key, got %v", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	svc := newTestTokenService("test-signing-key", 24*time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := svc.VerifyToken(context.Background(), unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf(`expected ErrInvalidToken for alg "none", got %v`, err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := newTestTokenService("test-signing-key", 24*time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.VerifyToken(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestVerifyNonUUIDSubject(t *testing.T) {
	svc := newTestTokenService("test-signing-key", 24*time.Hour)

	token, err := svc.IssueToken(context.Background(), "not-a-uuid")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := svc.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for malformed subject, got %v", err)
	}
}
