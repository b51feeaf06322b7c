// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a JSON logger at the given level. An unparsable level
// falls back to error so a misconfigured deployment stays quiet rather
// than crashing.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: l.Sugar(),
		security:      &SecurityLogger{l: l.Named("security")},
	}
}

// SecurityLogger writes audit events as structured records at info level.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) AuthSuccess(subject string) {
	s.l.Info("authentication succeeded",
		zap.String("event", "auth_success"),
		zap.String("subject", subject),
	)
}

func (s *SecurityLogger) AuthFailure(subject string) {
	s.l.Warn("authentication failed",
		zap.String("event", "auth_failure"),
		zap.String("subject", subject),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.l.Warn("authorization denied",
		zap.String("event", "authz_failure"),
		zap.String("subject", subject),
		zap.String("action", action),
	)
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("service started", zap.String("event", "system_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("service stopped", zap.String("event", "system_shutdown"))
}
