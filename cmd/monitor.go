// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/towerline/enqstat/pkg/capture"
	"github.com/towerline/enqstat/pkg/elevator"
	"github.com/towerline/enqstat/pkg/enq"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
	recordPath    string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor elevator status with live state tracking",
	Long: `Decode the ENQ status stream and track the elevator car in real time.

This command resynchronizes on the incoming byte stream, validates each
16-byte frame, and folds the reported values into a live car state:
  - Current floor, destination floor, and cabin load
  - Derived events (motion started, arrival, load change)
  - Link statistics (frame rate, checksum errors, discarded noise)

By default, only derived events are displayed. Use --show-all to display
every valid frame too. Use --record to append decoded frames to a capture
file for later replay.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all frames (not just derived events)")
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
	monitorCmd.Flags().StringVar(&recordPath, "record", "", "Record decoded frames to a capture file")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	var rec *capture.Writer
	if recordPath != "" {
		f, err := os.OpenFile(recordPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open capture file: %v", err)
		}
		defer f.Close()
		rec = capture.NewWriter(f)
	}

	if useTUI {
		return runMonitorTUI(conn, connInfo, rec)
	}
	return runMonitorText(conn, connInfo, rec)
}

// runMonitorTUI runs the monitor in TUI mode
func runMonitorTUI(conn Connection, connInfo string, rec *capture.Writer) error {
	framer := enq.NewFramer()
	synchronized := false

	m := initialMonitorModel(connInfo, showAll)
	p := tea.NewProgram(m)

	// Reader goroutine feeds the framer and forwards decoded frames
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				p.Send(connClosedMsg{err: err})
				return
			}

			frames := framer.Push(buf[:n])
			if len(frames) == 0 {
				continue
			}

			if !synchronized {
				// First frame decoded, the stream is locked
				synchronized = true
				p.Send(syncMsg{invalidBytes: framer.Discarded()})
			}

			if rec != nil {
				for _, fr := range frames {
					if err := rec.WriteFrame(fr); err != nil {
						log.Printf("Capture write error: %v", err)
					}
				}
			}

			p.Send(frameMsg{
				frames:          frames,
				checksumErrors:  framer.ChecksumErrors(),
				malformedFrames: framer.MalformedFrames(),
				bytesDiscarded:  framer.Discarded(),
			})
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	return nil
}

// runMonitorText runs the monitor in text mode
func runMonitorText(conn Connection, connInfo string, rec *capture.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return monitorTextLoop(ctx, conn, connInfo, rec)
}

// monitorTextLoop is the text-mode read loop. Cancelling the context closes
// the connection, which unblocks the reader goroutine, and prints the final
// statistics before returning.
func monitorTextLoop(ctx context.Context, conn Connection, connInfo string, rec *capture.Writer) error {
	fmt.Printf("Enqstat - Elevator Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All frames\n")
	} else {
		fmt.Printf("Mode: Events only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	framer := enq.NewFramer()
	tracker := elevator.NewTracker()
	stats := enq.NewStatistics()

	// Sync tracking - discarded bytes before the first frame are startup
	// noise, not link errors
	synchronized := false

	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	// Channel for non-blocking serial reads
	serialBuf := make(chan []byte, 10)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			serialBuf <- data
		}
	}()

	for {
		select {
		case data := <-serialBuf:
			frames := framer.Push(data)
			if len(frames) > 0 && !synchronized {
				synchronized = true
				if skipped := framer.Discarded(); skipped > 0 {
					fmt.Printf("[SYNC] Synchronized after skipping %d invalid bytes\n\n", skipped)
				} else {
					fmt.Printf("[SYNC] Synchronized\n\n")
				}
			}

			for _, fr := range frames {
				stats.RecordFrame(fr)

				if rec != nil {
					if err := rec.WriteFrame(fr); err != nil {
						log.Printf("Capture write error: %v", err)
					}
				}

				if showAll {
					fmt.Print(enq.FormatFrame(fr))
				}

				if ev, ok := tracker.Apply(fr); ok {
					timestamp := fr.Timestamp.Format("15:04:05.000")
					fmt.Printf("[%s] \033[1;32m%s:\033[0m %s\n", timestamp, ev.Kind, ev)
				}
			}

		case err := <-readErr:
			if err == ErrConnectionClosed || ctx.Err() != nil {
				log.Printf("Connection closed")
				return nil
			}
			return fmt.Errorf("read error: %v", err)

		case <-ctx.Done():
			// Interrupted. Closing the connection unblocks the reader
			// goroutine before the deferred cleanup runs.
			conn.Close()
			stats.RecordLink(framer)
			fmt.Println()
			fmt.Print(stats.String())
			return nil

		case <-statsTicker.C:
			stats.RecordLink(framer)
			fmt.Println()
			fmt.Print(stats.String())
			fmt.Println()
		}
	}
}
