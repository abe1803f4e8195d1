// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

// Package capture records decoded ENQ frames to a CBOR stream for offline
// replay.
//
// A capture file is a plain sequence of top-level CBOR records, one per
// frame. Records carry the raw 16 wire bytes rather than parsed fields, so a
// capture is lossless and a replayed frame passes through the exact same
// decode path as a live one.
package capture

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/towerline/enqstat/pkg/enq"
)

// Record is one captured frame.
type Record struct {
	Timestamp time.Time `cbor:"1,keyasint"`
	Raw       []byte    `cbor:"2,keyasint"`
}

// Frame decodes the record's wire bytes, stamped with the capture time.
func (r *Record) Frame() (*enq.Frame, error) {
	fr, err := enq.Decode(r.Raw)
	if err != nil {
		return nil, err
	}
	fr.Timestamp = r.Timestamp
	return fr, nil
}

// encMode keeps sub-second timestamp precision; the default unix-seconds
// time encoding truncates.
var encMode, _ = cbor.EncOptions{Time: cbor.TimeUnixMicro}.EncMode()

// Writer appends frame records to a capture stream.
type Writer struct {
	enc *cbor.Encoder
}

// NewWriter creates a capture writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encMode.NewEncoder(w)}
}

// WriteFrame encodes the frame back to wire bytes and appends one record.
func (w *Writer) WriteFrame(fr *enq.Frame) error {
	raw, err := enq.Encode(fr)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	ts := fr.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return w.enc.Encode(Record{Timestamp: ts, Raw: raw})
}

// Reader iterates the records of a capture stream.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader creates a capture reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next returns the next record, or io.EOF at the end of the stream.
func (r *Reader) Next() (*Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("capture: %w", err)
	}
	return &rec, nil
}
