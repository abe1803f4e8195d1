// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package scenario

import (
	"bytes"
	"testing"
	"time"

	"github.com/towerline/enqstat/pkg/enq"
)

// collect runs the sequencer for n steps, returning frames and delays.
func collect(s *Sequencer, n int) ([]*enq.Frame, []time.Duration) {
	frames := make([]*enq.Frame, n)
	delays := make([]time.Duration, n)
	for i := 0; i < n; i++ {
		frames[i], delays[i] = s.Next()
	}
	return frames, delays
}

func TestSequencer_FirstCycleShape(t *testing.T) {
	s := New(Config{Station: 1, StartFloor: 1})
	frames, delays := collect(s, 20)

	check := func(i int, dataNumber, dataValue uint16) {
		t.Helper()
		if frames[i].DataNumber != dataNumber {
			t.Errorf("frame %d dataNumber = %d, want %d", i, frames[i].DataNumber, dataNumber)
		}
		if frames[i].DataValue != dataValue {
			t.Errorf("frame %d dataValue = 0x%04X, want 0x%04X", i, frames[i].DataValue, dataValue)
		}
	}

	// current floor 1F x5, destination 3F x5, cleared x5, load 850 x5
	for i := 0; i < 5; i++ {
		check(i, enq.DataCurrentFloor, 0x0001)
		check(i+5, enq.DataDestinationFloor, 0x0003)
		check(i+10, enq.DataDestinationFloor, enq.DestinationNone)
		check(i+15, enq.DataLoad, 850)
	}

	// Delays: 1s inside bursts, 3s after current floor and destination
	// bursts, 1s into the load burst, 5s closing the leg.
	wantExit := map[int]time.Duration{4: travelWait, 9: travelWait, 14: burstInterval, 19: cycleWait}
	for i, d := range delays {
		want := burstInterval
		if w, ok := wantExit[i]; ok {
			want = w
		}
		if d != want {
			t.Errorf("delay %d = %v, want %v", i, d, want)
		}
	}
}

func TestSequencer_LegAdvance(t *testing.T) {
	s := New(Config{Station: 1, StartFloor: 1})

	// First cycle ends at 3F; second cycle reports 3F then heads to B1F
	// with 1200 kg; third starts from B1F.
	frames, _ := collect(s, 60)

	second := frames[20:40]
	if second[0].DataNumber != enq.DataCurrentFloor || second[0].FloorValue() != 3 {
		t.Errorf("second cycle starts at %s, want 3F", second[0].FloorValue())
	}
	if second[5].DataNumber != enq.DataDestinationFloor || second[5].FloorValue() != -1 {
		t.Errorf("second cycle destination = %s, want B1F", second[5].FloorValue())
	}
	if second[15].DataNumber != enq.DataLoad || second[15].LoadKg() != 1200 {
		t.Errorf("second cycle load = %d, want 1200", second[15].LoadKg())
	}

	third := frames[40:60]
	if third[0].FloorValue() != -1 {
		t.Errorf("third cycle starts at %s, want B1F", third[0].FloorValue())
	}
}

func TestSequencer_ScriptWrapsAround(t *testing.T) {
	s := New(Config{Station: 1, StartFloor: 1, Legs: []Leg{{Destination: 2, Load: 100}}})
	frames, _ := collect(s, 40)

	// Single-leg script: every cycle after the first starts at 2F and heads
	// back to 2F.
	if frames[20].FloorValue() != 2 {
		t.Errorf("cycle 2 starts at %s, want 2F", frames[20].FloorValue())
	}
	if frames[25].FloorValue() != 2 {
		t.Errorf("cycle 2 destination = %s, want 2F", frames[25].FloorValue())
	}
}

func TestSequencer_Deterministic(t *testing.T) {
	run := func() []byte {
		s := New(Config{Station: 42, StartFloor: -1})
		var out []byte
		for i := 0; i < 100; i++ {
			fr, _ := s.Next()
			wire, err := enq.Encode(fr)
			if err != nil {
				t.Fatalf("encode error at step %d: %v", i, err)
			}
			out = append(out, wire...)
		}
		return out
	}

	if !bytes.Equal(run(), run()) {
		t.Error("two runs from the same configuration diverged")
	}
}

func TestSequencer_FramesAlwaysEncodable(t *testing.T) {
	s := New(Config{Station: 9999, StartFloor: 5, Legs: []Leg{{Destination: -3, Load: 2000}, {Destination: 12, Load: 0}}})
	for i := 0; i < 200; i++ {
		fr, delay := s.Next()
		if _, err := enq.Encode(fr); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if delay <= 0 {
			t.Fatalf("step %d: non-positive delay %v", i, delay)
		}
	}
}
