// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

import (
	"fmt"
	"time"
)

// Statistics tracks link quality over a monitoring session: how many frames
// decoded, how many windows were rejected, and how much of the stream was
// noise.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	ValidFrames     uint64
	ChecksumErrors  uint64
	MalformedFrames uint64
	BytesDiscarded  uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ErrorRate float64 // rejected windows/sec
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// RecordFrame counts one successfully decoded frame.
func (s *Statistics) RecordFrame(*Frame) {
	s.ValidFrames++
	s.LastUpdateTime = time.Now()
}

// RecordLink copies the framer's rejection counters into the statistics.
// Call before rendering a summary.
func (s *Statistics) RecordLink(f *Framer) {
	s.ChecksumErrors = f.ChecksumErrors()
	s.MalformedFrames = f.MalformedFrames()
	s.BytesDiscarded = f.Discarded()
}

// TotalFrames returns decoded frames plus rejected windows.
func (s *Statistics) TotalFrames() uint64 {
	return s.ValidFrames + s.ChecksumErrors + s.MalformedFrames
}

// CalculateRates recalculates the frame and error rates.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.ValidFrames) / elapsed
		s.ErrorRate = float64(s.ChecksumErrors+s.MalformedFrames) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	s.CalculateRates()

	total := s.TotalFrames()
	var validPercent, checksumPercent, malformedPercent float64
	if total > 0 {
		validPercent = float64(s.ValidFrames) * 100.0 / float64(total)
		checksumPercent = float64(s.ChecksumErrors) * 100.0 / float64(total)
		malformedPercent = float64(s.MalformedFrames) * 100.0 / float64(total)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Frames:    %8d\n", total)
	result += fmt.Sprintf("Valid Frames:    %8d (%.1f%%)\n", s.ValidFrames, validPercent)

	if s.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d (%.1f%%)\n", s.ChecksumErrors, checksumPercent)
	}
	if s.MalformedFrames > 0 {
		result += fmt.Sprintf("Malformed:       %8d (%.1f%%)\n", s.MalformedFrames, malformedPercent)
	}
	if s.BytesDiscarded > 0 {
		result += fmt.Sprintf("Bytes Discarded: %8d\n", s.BytesDiscarded)
	}

	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters.
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.ValidFrames = 0
	s.ChecksumErrors = 0
	s.MalformedFrames = 0
	s.BytesDiscarded = 0
	s.FrameRate = 0
	s.ErrorRate = 0
}
