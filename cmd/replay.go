// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/towerline/enqstat/pkg/capture"
	"github.com/towerline/enqstat/pkg/elevator"
	"github.com/towerline/enqstat/pkg/enq"
)

var replaySpeed float64

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Replay a recorded capture file",
	Long: `Replay frames from a capture file recorded with 'monitor --record'.

Frames pass through the same decode and state-tracking path as a live
stream, with the original inter-frame timing scaled by --speed. A speed of
0 replays as fast as possible, which is useful for regression-checking a
session's derived events.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 = no delays)")
	replayCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all frames (not just derived events)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture file: %v", err)
	}
	defer f.Close()

	fmt.Printf("Enqstat - Capture Replay\n")
	fmt.Printf("File: %s\n", args[0])
	if replaySpeed > 0 {
		fmt.Printf("Speed: %.1fx\n\n", replaySpeed)
	} else {
		fmt.Printf("Speed: unlimited\n\n")
	}

	r := capture.NewReader(f)
	tracker := elevator.NewTracker()
	stats := enq.NewStatistics()

	var prev time.Time
	count := 0
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("record %d: %v", count, err)
		}

		fr, err := rec.Frame()
		if err != nil {
			// A capture holds frames that already decoded once; a bad
			// record means the file is damaged
			fmt.Printf("[ERROR] record %d: %v\n", count, err)
			count++
			continue
		}

		if replaySpeed > 0 && !prev.IsZero() {
			gap := rec.Timestamp.Sub(prev)
			if gap > 0 {
				time.Sleep(time.Duration(float64(gap) / replaySpeed))
			}
		}
		prev = rec.Timestamp
		count++

		stats.RecordFrame(fr)
		if showAll {
			fmt.Print(enq.FormatFrame(fr))
		}
		if ev, ok := tracker.Apply(fr); ok {
			timestamp := fr.Timestamp.Format("15:04:05.000")
			fmt.Printf("[%s] %s: %s\n", timestamp, ev.Kind, ev)
		}
	}

	fmt.Println()
	fmt.Print(stats.String())
	return nil
}
