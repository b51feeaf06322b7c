// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Security() SecurityLoggerInterface
	Sync() error
}

// SecurityLoggerInterface emits audit events for authentication and
// authorization outcomes, kept separate from diagnostic logging so they
// can be shipped to a dedicated sink.
type SecurityLoggerInterface interface {
	AuthSuccess(subject string)
	AuthFailure(subject string)
	AuthzFailure(subject, action string)
	SystemStartup()
	SystemShutdown()
}
