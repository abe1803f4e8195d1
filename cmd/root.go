// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int
	parity   string

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "enqstat",
	Short: "ENQ Elevator Protocol Monitor",
	Long: `Enqstat - A CLI tool for monitoring, simulating, and analyzing ENQ
elevator status messages.

The ENQ protocol is a fixed 16-byte ASCII message format spoken by elevator
controllers over a serial link. Enqstat decodes the stream, tracks the car's
floor, destination, and load, and derives motion and arrival events.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600] [--parity even]
  WebSocket: --url ws://host/path [--username user]

The controller link runs at 9600 baud, 8 data bits, even parity, 1 stop bit;
those are the defaults. For WebSocket authentication, the password is read
from the ENQSTAT_PASSWORD environment variable, or prompted interactively if
not set. The --password flag is intentionally not provided to avoid leaking
credentials in shell history.`,
	Version: "1.2.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")
	rootCmd.PersistentFlags().StringVar(&parity, "parity", "even", "Parity: none, even, or odd (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
