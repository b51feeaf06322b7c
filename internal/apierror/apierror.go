// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

// Package apierror defines the error kinds the service surfaces to
// clients. Each kind maps to a fixed HTTP status; anything that is not
// an *Error is treated as internal and its details are logged, never
// returned.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quittance/property-service/internal/logging"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	kind    Kind
	message string
	wrapped error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.wrapped != nil {
		return e.message + ": " + e.wrapped.Error()
	}
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// Message is the client-facing text. Wrapped causes are excluded.
func (e *Error) Message() string {
	return e.message
}

func (e *Error) StatusCode() int {
	switch e.kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(message string) *Error {
	return &Error{kind: KindValidation, message: message}
}

// NewAuthentication always carries the same generic message. Failed
// password checks, bad tokens and hashing engine errors are not
// distinguishable from the response.
func NewAuthentication() *Error {
	return &Error{kind: KindAuthentication, message: "invalid credentials"}
}

func NewNotFound(message string) *Error {
	return &Error{kind: KindNotFound, message: message}
}

func NewConflict(message string) *Error {
	return &Error{kind: KindConflict, message: message}
}

func NewInternal(cause error) *Error {
	return &Error{kind: KindInternal, message: "internal server error", wrapped: cause}
}

// WriteJSON renders err as the client response. Internal details are
// logged and replaced with the kind's fixed message.
func WriteJSON(w http.ResponseWriter, logger logging.LoggerInterface, err error) {
	apiErr := &Error{}
	if !errors.As(err, &apiErr) {
		apiErr = NewInternal(err)
	}

	if apiErr.kind == KindInternal {
		logger.Errorf("internal error: %v", apiErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode())
	if encErr := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": apiErr.Message(),
	}); encErr != nil {
		logger.Errorf("failed to encode error response: %v", encErr)
	}
}
