// Copyright 2025 Quittance Labs
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/quittance/property-service/cmd"

func main() {
	cmd.Execute()
}
