// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"github.com/quittance/property-service/internal/db"
	"github.com/quittance/property-service/internal/logging"
	"github.com/quittance/property-service/internal/monitoring"
	"github.com/quittance/property-service/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

// memberOrganizations is the subquery shared by every visibility
// predicate: the set of organizations the given user belongs to.
const memberOrganizations = "(SELECT organization_id FROM organization_members WHERE user_id = ?)"

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
