// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/towerline/enqstat/pkg/elevator"
	"github.com/towerline/enqstat/pkg/enq"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for link errors, false for events
}

// TUI model
type monitorModel struct {
	connInfo      string
	showAll       bool
	stats         *enq.Statistics
	tracker       *elevator.Tracker
	spin          spinner.Model
	eventLog      []eventLogEntry
	maxLogEntries int
	synchronized  bool
	invalidBytes  uint64
	width         int
	height        int
	quitting      bool

	// Rejection counters as of the last frame batch
	lastChecksum  uint64
	lastMalformed uint64
}

// Messages
type tickMsg time.Time
type frameMsg struct {
	frames          []*enq.Frame
	checksumErrors  uint64
	malformedFrames uint64
	bytesDiscarded  uint64
}
type syncMsg struct {
	invalidBytes uint64
}
type connClosedMsg struct {
	err error
}

func initialMonitorModel(connInfo string, showAll bool) monitorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return monitorModel{
		connInfo:      connInfo,
		showAll:       showAll,
		stats:         enq.NewStatistics(),
		tracker:       elevator.NewTracker(),
		spin:          sp,
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		synchronized:  false,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spin.Tick,
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		// Update statistics rates
		m.stats.CalculateRates()
		return m, tickCmd()

	case syncMsg:
		m.synchronized = true
		m.invalidBytes = msg.invalidBytes
		if msg.invalidBytes > 0 {
			m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d invalid bytes", msg.invalidBytes), false)
		} else {
			m.addLogEntry("Synchronized", false)
		}

	case connClosedMsg:
		if msg.err == ErrConnectionClosed {
			m.addLogEntry("Connection closed", true)
		} else {
			m.addLogEntry(fmt.Sprintf("Read error: %v", msg.err), true)
		}
		m.quitting = true
		return m, tea.Quit

	case frameMsg:
		// Frames that the framer rejected since the last batch
		if d := msg.checksumErrors - m.lastChecksum; d > 0 && m.synchronized {
			m.addLogEntry(fmt.Sprintf("%d checksum error(s)", d), true)
		}
		if d := msg.malformedFrames - m.lastMalformed; d > 0 && m.synchronized {
			m.addLogEntry(fmt.Sprintf("%d malformed frame(s)", d), true)
		}
		m.lastChecksum = msg.checksumErrors
		m.lastMalformed = msg.malformedFrames

		m.stats.ChecksumErrors = msg.checksumErrors
		m.stats.MalformedFrames = msg.malformedFrames
		m.stats.BytesDiscarded = msg.bytesDiscarded

		for _, fr := range msg.frames {
			m.stats.RecordFrame(fr)

			if ev, ok := m.tracker.Apply(fr); ok {
				m.addLogEntry(ev.String(), false)
			} else if m.showAll {
				m.addLogEntry(fmt.Sprintf("%s = %s",
					enq.FormatDataNumber(fr.DataNumber),
					enq.FormatValue(fr.DataNumber, fr.DataValue)), false)
			}
		}
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("ENQSTAT - ELEVATOR MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Connection: %s | Mode: %s | Press 'q' to quit",
		m.connInfo, func() string {
			if m.showAll {
				return "All frames"
			}
			return "Events only"
		}())))
	s.WriteString("\n\n")

	// Sync status
	if !m.synchronized {
		s.WriteString(m.spin.View())
		s.WriteString(warningStyle.Render(" Waiting for synchronization..."))
		s.WriteString("\n\n")
	} else {
		s.WriteString(valueStyle.Render("✓ Synchronized"))
		if m.invalidBytes > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf(" (skipped %d invalid bytes)", m.invalidBytes)))
		}
		s.WriteString("\n\n")
	}

	// Elevator state
	state := m.tracker.State()
	stateContent := strings.Builder{}

	floor := "unknown"
	if state.FloorKnown {
		floor = state.CurrentFloor.String()
	}
	dest := "none"
	if state.HasDestination {
		dest = state.DestinationFloor.String()
	}
	load := "unknown"
	if state.LoadKnown {
		load = fmt.Sprintf("%d kg", state.Load)
	}

	stateContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("Floor:"), valueStyle.Render(floor),
		labelStyle.Render("Destination:"), func() string {
			if state.HasDestination {
				return warningStyle.Render(dest)
			}
			return headerStyle.Render(dest)
		}(),
		labelStyle.Render("Load:"), valueStyle.Render(load),
	))

	if state.HasDestination {
		stateContent.WriteString("\n")
		stateContent.WriteString(fmt.Sprintf("%s %s",
			labelStyle.Render("Status:"), warningStyle.Render(fmt.Sprintf("moving to %s", dest)),
		))
	}

	s.WriteString(labelStyle.Render("Elevator:"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Render(stateContent.String()))
	s.WriteString("\n\n")

	// Statistics
	m.stats.CalculateRates()
	total := m.stats.TotalFrames()
	var validPercent, errorPercent float64
	if total > 0 {
		validPercent = float64(m.stats.ValidFrames) * 100.0 / float64(total)
		errorPercent = float64(m.stats.ChecksumErrors+m.stats.MalformedFrames) * 100.0 / float64(total)
	}

	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Total:"), valueStyle.Render(fmt.Sprintf("%d", total)),
		labelStyle.Render("Valid:"), valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.ValidFrames, validPercent)),
		labelStyle.Render("Errors:"), errorStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.ChecksumErrors+m.stats.MalformedFrames, errorPercent)),
	))

	if m.stats.ChecksumErrors > 0 || m.stats.MalformedFrames > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Checksum Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.ChecksumErrors)),
			labelStyle.Render("Malformed:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.MalformedFrames)),
		))
	}

	if m.stats.BytesDiscarded > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("Bytes Discarded:"), warningStyle.Render(fmt.Sprintf("%d", m.stats.BytesDiscarded)),
		))
	}

	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Frame Rate:"), valueStyle.Render(fmt.Sprintf("%.1f frames/s", m.stats.FrameRate)),
		labelStyle.Render("Error Rate:"), func() string {
			if m.stats.ErrorRate > 0 {
				return errorStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
			}
			return valueStyle.Render(fmt.Sprintf("%.1f err/s", m.stats.ErrorRate))
		}(),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 18 // Reserve space for header, state, and stats
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					valueStyle.Render("• "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
