// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

// Package scenario emits a scripted elevator status sequence for exercising
// ENQ receivers without a real controller.
//
// The sequencer is a deterministic phase machine. It owns no timer: Next
// returns the frame to transmit together with the delay the caller should
// wait before asking for the next one, so tests can drive it without any
// clock and two runs from the same configuration produce byte-identical
// frame sequences.
package scenario

import (
	"time"

	"github.com/towerline/enqstat/pkg/enq"
)

// Emission cadence. Each send phase emits burstCount frames one
// burstInterval apart; travelWait separates the announcement phases and
// cycleWait separates legs.
const (
	burstCount    = 5
	burstInterval = 1 * time.Second
	travelWait    = 3 * time.Second
	cycleWait     = 5 * time.Second
)

// Phases, executed in fixed cyclic order.
const (
	phaseCurrentFloor = iota
	phaseDestination
	phaseArrivalClear
	phaseLoad
)

// Leg is one scripted trip: where the car goes and what it carries.
type Leg struct {
	Destination enq.Floor
	Load        uint16
}

// DefaultLegs is the demo script: 1F to 3F with 850 kg, down to B1F with
// 1200 kg, back up to 2F with 650 kg.
var DefaultLegs = []Leg{
	{Destination: 3, Load: 850},
	{Destination: -1, Load: 1200},
	{Destination: 2, Load: 650},
}

// Config holds the scenario parameters. They are supplied by the CLI layer;
// the sequencer itself reads no flags and no globals.
type Config struct {
	Station    uint16
	StartFloor enq.Floor
	Legs       []Leg
}

// Sequencer walks the scripted legs indefinitely. It is single-owner state:
// one goroutine calls Next, encodes, transmits, and sleeps the returned
// delay.
type Sequencer struct {
	station uint16
	current enq.Floor
	legs    []Leg

	leg   int
	phase int
	sent  int
}

// New creates a sequencer positioned at the configured start floor. An empty
// leg script falls back to DefaultLegs.
func New(cfg Config) *Sequencer {
	legs := cfg.Legs
	if len(legs) == 0 {
		legs = DefaultLegs
	}
	return &Sequencer{
		station: cfg.Station,
		current: cfg.StartFloor,
		legs:    legs,
	}
}

// Next returns the next frame to transmit and the delay before the one after
// it. The cycle per leg is:
//
//	current floor x5 @1s, wait 3s,
//	destination x5 @1s, wait 3s,
//	destination-cleared x5 @1s,
//	load x5 @1s, wait 5s, next leg.
//
// There is no terminal state; the caller stops the loop.
func (s *Sequencer) Next() (*enq.Frame, time.Duration) {
	switch s.phase {
	case phaseCurrentFloor:
		fr := enq.NewCurrentFloorFrame(s.station, s.current)
		return fr, s.step(phaseDestination, travelWait)

	case phaseDestination:
		fr := enq.NewDestinationFrame(s.station, s.legs[s.leg].Destination)
		return fr, s.step(phaseArrivalClear, travelWait)

	case phaseArrivalClear:
		fr := enq.NewClearDestinationFrame(s.station)
		return fr, s.step(phaseLoad, burstInterval)

	default: // phaseLoad
		fr := enq.NewLoadFrame(s.station, s.legs[s.leg].Load)
		delay := s.step(phaseCurrentFloor, cycleWait)
		if s.phase == phaseCurrentFloor {
			// Leg complete: the car is now at the scripted destination.
			s.current = s.legs[s.leg].Destination
			s.leg = (s.leg + 1) % len(s.legs)
		}
		return fr, delay
	}
}

// step counts one emission. It returns burstInterval while the burst is
// running, and advances to next with the given phase-exit delay once
// burstCount frames have been emitted.
func (s *Sequencer) step(next int, exitDelay time.Duration) time.Duration {
	s.sent++
	if s.sent < burstCount {
		return burstInterval
	}
	s.sent = 0
	s.phase = next
	return exitDelay
}
