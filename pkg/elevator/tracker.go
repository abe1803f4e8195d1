// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

// Package elevator derives elevator car state and semantic events from a
// stream of decoded ENQ frames.
//
// The wire protocol is stateless: every frame carries one absolute value
// (current floor, destination floor, or load). The tracker folds those
// values into a State record and derives the transitions a renderer cares
// about: motion starting, arrival at the destination, and load changes.
package elevator

import (
	"fmt"

	"github.com/towerline/enqstat/pkg/enq"
)

// EventKind identifies a derived semantic event.
type EventKind int

const (
	EventNone EventKind = iota
	EventMotionStarted
	EventArrival
	EventLoadChanged
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMotionStarted:
		return "MOTION_STARTED"
	case EventArrival:
		return "ARRIVAL"
	case EventLoadChanged:
		return "LOAD_CHANGED"
	default:
		return "NONE"
	}
}

// Event is a derived semantic event plus the state snapshot after applying
// the frame that produced it.
//
// From is only meaningful when State.FloorKnown is set: a destination can
// arrive before the car has reported any floor, and the zero Floor is not a
// real floor (numbering skips 0).
type Event struct {
	Kind  EventKind
	From  enq.Floor // MotionStarted: departure floor, see FloorKnown caveat
	To    enq.Floor // MotionStarted: destination floor
	Floor enq.Floor // Arrival: floor arrived at
	Load  uint16    // LoadChanged: new load in kilograms
	State State
}

// String renders the event the way the monitoring log displays it.
func (e Event) String() string {
	switch e.Kind {
	case EventMotionStarted:
		if !e.State.FloorKnown {
			return fmt.Sprintf("motion started -> %s", e.To)
		}
		return fmt.Sprintf("motion started %s -> %s", e.From, e.To)
	case EventArrival:
		return fmt.Sprintf("arrived at %s", e.Floor)
	case EventLoadChanged:
		return fmt.Sprintf("load %d kg", e.Load)
	default:
		return "none"
	}
}

// State is the derived elevator car state. Floor and load are undefined
// until the first frame of each kind arrives; the Known flags distinguish
// "not yet reported" from a real zero value.
type State struct {
	CurrentFloor     enq.Floor
	FloorKnown       bool
	DestinationFloor enq.Floor
	HasDestination   bool
	Load             uint16
	LoadKnown        bool
	LastEvent        EventKind
}

// Tracker owns one State and mutates it by applying validated frames, one
// at a time. Apply is a pure state reduction: the same state and frame
// always yield the same next state and event, so sessions replay
// deterministically.
type Tracker struct {
	state State
}

// NewTracker creates a tracker with no destination and floor/load unknown.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	return t.state
}

// Apply folds one frame into the state. It returns the derived event and
// true when the frame produced one. Frames with an unknown data number are
// ignored without mutation, keeping the tracker forward-compatible with
// protocol extensions.
func (t *Tracker) Apply(fr *enq.Frame) (Event, bool) {
	switch fr.DataNumber {
	case enq.DataCurrentFloor:
		floor := fr.FloorValue()
		t.state.CurrentFloor = floor
		t.state.FloorKnown = true
		if t.state.HasDestination && t.state.DestinationFloor == floor {
			t.state.HasDestination = false
			return t.emit(Event{Kind: EventArrival, Floor: floor}), true
		}
		return Event{}, false

	case enq.DataDestinationFloor:
		if fr.DataValue == enq.DestinationNone {
			t.state.HasDestination = false
			return Event{}, false
		}
		dest := fr.FloorValue()
		if t.state.HasDestination && t.state.DestinationFloor == dest {
			return Event{}, false
		}
		if t.state.FloorKnown && dest == t.state.CurrentFloor {
			return Event{}, false
		}
		from := t.state.CurrentFloor
		t.state.DestinationFloor = dest
		t.state.HasDestination = true
		return t.emit(Event{Kind: EventMotionStarted, From: from, To: dest}), true

	case enq.DataLoad:
		t.state.Load = fr.LoadKg()
		t.state.LoadKnown = true
		return t.emit(Event{Kind: EventLoadChanged, Load: t.state.Load}), true

	default:
		return Event{}, false
	}
}

// emit records the event kind on the state and attaches the snapshot.
func (t *Tracker) emit(ev Event) Event {
	t.state.LastEvent = ev.Kind
	ev.State = t.state
	return ev
}
