// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package capture

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/towerline/enqstat/pkg/enq"
)

func TestCapture_WriteAndReadBack(t *testing.T) {
	frames := []*enq.Frame{
		enq.NewCurrentFloorFrame(1, 1),
		enq.NewDestinationFrame(1, 3),
		enq.NewCurrentFloorFrame(1, 3),
		enq.NewLoadFrame(1, 1870),
	}
	base := time.Date(2025, 8, 25, 14, 22, 0, 0, time.UTC)
	for i, fr := range frames {
		fr.Timestamp = base.Add(time.Duration(i) * time.Second)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, fr := range frames {
		if err := w.WriteFrame(fr); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	r := NewReader(&buf)
	for i, want := range frames {
		rec, err := r.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if !rec.Timestamp.Equal(want.Timestamp) {
			t.Errorf("record %d timestamp = %v, want %v", i, rec.Timestamp, want.Timestamp)
		}
		got, err := rec.Frame()
		if err != nil {
			t.Fatalf("record %d frame: %v", i, err)
		}
		if got.Station != want.Station || got.DataNumber != want.DataNumber || got.DataValue != want.DataValue {
			t.Errorf("record %d = %+v, want %+v", i, got, want)
		}
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF after last record, got %v", err)
	}
}

func TestCapture_CorruptRecordSurfacesError(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	fr := enq.NewCurrentFloorFrame(1, 2)
	fr.Timestamp = time.Now()
	if err := w.WriteFrame(fr); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	// Truncate mid-record.
	data := buf.Bytes()[:buf.Len()-3]
	r := NewReader(bytes.NewReader(data))
	if _, err := r.Next(); err == nil {
		t.Error("expected error for truncated record")
	}
}

func TestCapture_RawBytesAreWireExact(t *testing.T) {
	fr := enq.NewLoadFrame(1, 1870)
	fr.Timestamp = time.Now()

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteFrame(fr); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	rec, err := NewReader(&buf).Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(rec.Raw) != "\x050001W0003074EBB" {
		t.Errorf("raw bytes = %q", rec.Raw)
	}
}
