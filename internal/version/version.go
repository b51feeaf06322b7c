// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
