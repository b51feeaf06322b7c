// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestNoopLoggerSecurity(t *testing.T) {
	l := NewNoopLogger()
	if l.Security() == nil {
		t.Fatal("expected security logger")
	}
	l.Security().AuthFailure("subject")
	l.Security().AuthzFailure("subject", "property_access")
}
