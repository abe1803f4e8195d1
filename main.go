// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems
//
// Enqstat - ENQ Elevator Protocol Monitor
//
// A CLI tool for monitoring, simulating, and analyzing ENQ elevator status
// messages in human-readable format.

package main

import (
	"os"

	"github.com/towerline/enqstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
