// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package elevator

import (
	"testing"

	"github.com/towerline/enqstat/pkg/enq"
)

func TestTracker_ArrivalDerivation(t *testing.T) {
	tr := NewTracker()

	// Destination 3F while at 1F starts motion.
	if _, ok := tr.Apply(enq.NewCurrentFloorFrame(1, 1)); ok {
		t.Error("initial current floor should not emit an event")
	}
	ev, ok := tr.Apply(enq.NewDestinationFrame(1, 3))
	if !ok || ev.Kind != EventMotionStarted {
		t.Fatalf("expected MotionStarted, got %v ok=%v", ev.Kind, ok)
	}
	if ev.From != 1 || ev.To != 3 {
		t.Errorf("MotionStarted %s -> %s, want 1F -> 3F", ev.From, ev.To)
	}

	// Reaching 3F derives exactly one Arrival and clears the destination.
	ev, ok = tr.Apply(enq.NewCurrentFloorFrame(1, 3))
	if !ok || ev.Kind != EventArrival {
		t.Fatalf("expected Arrival, got %v ok=%v", ev.Kind, ok)
	}
	if ev.Floor != 3 {
		t.Errorf("arrived at %s, want 3F", ev.Floor)
	}
	if tr.State().HasDestination {
		t.Error("destination should be cleared after arrival")
	}

	// A repeated current-floor report is not a second arrival.
	if _, ok := tr.Apply(enq.NewCurrentFloorFrame(1, 3)); ok {
		t.Error("repeated current floor emitted a duplicate event")
	}
}

func TestTracker_RepeatedDestinationEmitsOnce(t *testing.T) {
	tr := NewTracker()
	tr.Apply(enq.NewCurrentFloorFrame(1, 1))

	var events int
	for i := 0; i < 5; i++ {
		if _, ok := tr.Apply(enq.NewDestinationFrame(1, 3)); ok {
			events++
		}
	}
	if events != 1 {
		t.Errorf("5 identical destination frames emitted %d events, want 1", events)
	}
}

func TestTracker_DestinationEqualsCurrentFloor(t *testing.T) {
	tr := NewTracker()
	tr.Apply(enq.NewCurrentFloorFrame(1, 2))

	if _, ok := tr.Apply(enq.NewDestinationFrame(1, 2)); ok {
		t.Error("destination equal to current floor should not start motion")
	}
	if tr.State().HasDestination {
		t.Error("destination equal to current floor should not be stored")
	}
}

func TestTracker_ClearDestinationSilent(t *testing.T) {
	tr := NewTracker()
	tr.Apply(enq.NewCurrentFloorFrame(1, 1))
	tr.Apply(enq.NewDestinationFrame(1, 3))

	if _, ok := tr.Apply(enq.NewClearDestinationFrame(1)); ok {
		t.Error("clearing the destination should not emit an event")
	}
	if tr.State().HasDestination {
		t.Error("destination should be cleared")
	}

	// With the destination cleared, reaching the old destination is not an
	// arrival.
	if _, ok := tr.Apply(enq.NewCurrentFloorFrame(1, 3)); ok {
		t.Error("current floor after a cleared destination emitted an event")
	}
}

func TestTracker_BasementDestination(t *testing.T) {
	tr := NewTracker()
	tr.Apply(enq.NewCurrentFloorFrame(1, 3))

	ev, ok := tr.Apply(enq.NewDestinationFrame(1, -1))
	if !ok || ev.Kind != EventMotionStarted {
		t.Fatalf("expected MotionStarted, got %v ok=%v", ev.Kind, ok)
	}
	if ev.String() != "motion started 3F -> B1F" {
		t.Errorf("event string = %q", ev.String())
	}

	ev, ok = tr.Apply(enq.NewCurrentFloorFrame(1, -1))
	if !ok || ev.Kind != EventArrival {
		t.Fatalf("expected Arrival at B1F, got %v ok=%v", ev.Kind, ok)
	}
}

func TestTracker_DestinationBeforeAnyFloorReport(t *testing.T) {
	tr := NewTracker()

	// A destination can arrive before the car has reported a floor. The
	// event must not invent a departure floor (there is no floor 0).
	ev, ok := tr.Apply(enq.NewDestinationFrame(1, 4))
	if !ok || ev.Kind != EventMotionStarted {
		t.Fatalf("expected MotionStarted, got %v ok=%v", ev.Kind, ok)
	}
	if ev.State.FloorKnown {
		t.Error("floor should still be unknown")
	}
	if got := ev.String(); got != "motion started -> 4F" {
		t.Errorf("event string = %q, want %q", got, "motion started -> 4F")
	}
}

func TestTracker_Load(t *testing.T) {
	tr := NewTracker()

	ev, ok := tr.Apply(enq.NewLoadFrame(1, 1870))
	if !ok || ev.Kind != EventLoadChanged {
		t.Fatalf("expected LoadChanged, got %v ok=%v", ev.Kind, ok)
	}
	if ev.Load != 1870 {
		t.Errorf("load = %d, want 1870", ev.Load)
	}
	st := tr.State()
	if !st.LoadKnown || st.Load != 1870 {
		t.Errorf("state load = %d known=%v", st.Load, st.LoadKnown)
	}
}

func TestTracker_UnknownDataNumberIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Apply(enq.NewCurrentFloorFrame(1, 2))
	before := tr.State()

	fr := &enq.Frame{Station: 1, Command: enq.CommandNotify, DataNumber: 99, DataValue: 0xBEEF}
	if _, ok := tr.Apply(fr); ok {
		t.Error("unknown data number emitted an event")
	}
	if tr.State() != before {
		t.Error("unknown data number mutated the state")
	}
}

func TestTracker_DeterministicReplay(t *testing.T) {
	frames := []*enq.Frame{
		enq.NewCurrentFloorFrame(1, 1),
		enq.NewDestinationFrame(1, 3),
		enq.NewLoadFrame(1, 850),
		enq.NewCurrentFloorFrame(1, 3),
		enq.NewDestinationFrame(1, -1),
		enq.NewCurrentFloorFrame(1, -1),
	}

	run := func() []Event {
		tr := NewTracker()
		var events []Event
		for _, fr := range frames {
			if ev, ok := tr.Apply(fr); ok {
				events = append(events, ev)
			}
		}
		return events
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("replay lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	wantKinds := []EventKind{EventMotionStarted, EventLoadChanged, EventArrival, EventMotionStarted, EventArrival}
	if len(a) != len(wantKinds) {
		t.Fatalf("emitted %d events, want %d", len(a), len(wantKinds))
	}
	for i, k := range wantKinds {
		if a[i].Kind != k {
			t.Errorf("event %d kind = %v, want %v", i, a[i].Kind, k)
		}
	}
}
