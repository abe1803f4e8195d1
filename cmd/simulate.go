// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/towerline/enqstat/pkg/enq"
	"github.com/towerline/enqstat/pkg/scenario"
)

var (
	simStation      uint16
	simStartFloor   int16
	simDestinations string
	simLoads        string
	simQuiet        bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Transmit a scripted elevator status stream",
	Long: `Generate ENQ status frames for a scripted sequence of elevator trips
and transmit them over the connection.

Each trip (leg) emits the controller's full reporting cycle: current floor
bursts, destination bursts, a destination-cleared burst on arrival, and load
bursts, with the controller's real pacing between them. When the script runs
out of legs it wraps around, so the stream continues until interrupted.

Floors are given as signed integers: positive for above-ground floors,
negative for basement levels (-1 = B1F). The default script runs the factory
demo loop: 1F to 3F with 850 kg, 3F to B1F with 1200 kg, B1F to 2F with
650 kg.

Examples:
  # Default demo loop on a serial port
  enqstat simulate --port /dev/ttyUSB1

  # Custom script: 1F -> 5F (300 kg) -> B2F (1100 kg)
  enqstat simulate --port /dev/ttyUSB1 --start-floor 1 \
    --destinations 5,-2 --loads 300,1100`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Uint16Var(&simStation, "station", 1, "Station number to report (0-9999)")
	simulateCmd.Flags().Int16Var(&simStartFloor, "start-floor", 1, "Floor the car starts on (negative for basement)")
	simulateCmd.Flags().StringVar(&simDestinations, "destinations", "", "Comma-separated destination floors, one per leg")
	simulateCmd.Flags().StringVar(&simLoads, "loads", "", "Comma-separated loads in kg, one per leg")
	simulateCmd.Flags().BoolVar(&simQuiet, "quiet", false, "Do not print transmitted frames")
}

// parseLegs builds the trip script from the --destinations and --loads flags.
func parseLegs(destinations, loads string) ([]scenario.Leg, error) {
	if destinations == "" && loads == "" {
		return nil, nil // sequencer falls back to the demo script
	}
	if destinations == "" || loads == "" {
		return nil, fmt.Errorf("--destinations and --loads must be given together")
	}

	destParts := strings.Split(destinations, ",")
	loadParts := strings.Split(loads, ",")
	if len(destParts) != len(loadParts) {
		return nil, fmt.Errorf("got %d destinations but %d loads", len(destParts), len(loadParts))
	}

	legs := make([]scenario.Leg, len(destParts))
	for i := range destParts {
		floor, err := strconv.ParseInt(strings.TrimSpace(destParts[i]), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid destination %q: %v", destParts[i], err)
		}
		if floor == 0 {
			return nil, fmt.Errorf("destination 0 is not a floor (floor numbering skips 0)")
		}
		load, err := strconv.ParseUint(strings.TrimSpace(loadParts[i]), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid load %q: %v", loadParts[i], err)
		}
		legs[i] = scenario.Leg{Destination: enq.Floor(floor), Load: uint16(load)}
	}
	return legs, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	legs, err := parseLegs(simDestinations, simLoads)
	if err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	seq := scenario.New(scenario.Config{
		Station:    simStation,
		StartFloor: enq.Floor(simStartFloor),
		Legs:       legs,
	})

	fmt.Printf("Enqstat - Elevator Simulator\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Station: %04d, starting floor: %s\n", simStation, enq.Floor(simStartFloor))
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sent := 0
	for {
		fr, delay := seq.Next()
		fr.Timestamp = time.Now()

		wire, err := enq.Encode(fr)
		if err != nil {
			return fmt.Errorf("encode error: %v", err)
		}
		if _, err := conn.Write(wire); err != nil {
			return fmt.Errorf("write error after %d frames: %v", sent, err)
		}
		sent++

		if !simQuiet {
			fmt.Print(enq.FormatFrame(fr))
		}

		select {
		case <-ctx.Done():
			fmt.Printf("\nStopped after %d frames\n", sent)
			return nil
		case <-time.After(delay):
		}
	}
}
