// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/towerline/enqstat/pkg/enq"
)

var rawHex bool

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display the raw frame log in human-readable format",
	Long: `Continuously decode and display ENQ frames as they arrive.

Each frame is shown with timestamp, data number name, station, and the
decoded value. With --hex the wire bytes of each frame are shown as paired
HEX and ASCII rows, matching the controller vendor's debug log layout.

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
	rawLogCmd.Flags().BoolVar(&rawHex, "hex", false, "Show wire bytes of each frame")
}

func runRawLog(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Enqstat - Raw Frame Log\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	framer := enq.NewFramer()
	buf := make([]byte, 128)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for _, fr := range framer.Push(buf[:n]) {
			fmt.Print(enq.FormatFrame(fr))
			if rawHex {
				// The codec round-trips, so re-encoding reproduces the
				// received wire bytes
				wire, err := enq.Encode(fr)
				if err == nil {
					fmt.Print(enq.FormatRaw(wire))
				}
			}
		}
	}
}
