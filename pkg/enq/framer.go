// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

import (
	"bytes"
	"errors"
)

// Framer recovers validated frames from a raw serial byte stream.
//
// Serial delivery carries no message boundaries: reads may split a frame
// across chunks, and line noise may corrupt or precede frames. The framer
// keeps a rolling buffer of unconsumed bytes, scans for the marker byte, and
// attempts a decode once a full 16-byte window is buffered. A failed decode
// advances the scan position by exactly one byte, so a valid frame adjacent
// to a corrupted one is never lost and resynchronization is bounded by the
// stream length.
//
// Push never returns an error: bad input is consumed, counted, and skipped.
// The framer holds no global state; independent instances can be fed
// independent streams.
type Framer struct {
	buf       []byte
	discarded uint64
	checksum  uint64
	malformed uint64
}

// NewFramer creates an empty framer.
func NewFramer() *Framer {
	return &Framer{buf: make([]byte, 0, 4*FrameLength)}
}

// Push appends a chunk of received bytes and returns the frames completed by
// it, in arrival order. Chunks may be of any size, including a single byte.
// An empty result means more input is needed.
func (f *Framer) Push(p []byte) []*Frame {
	f.buf = append(f.buf, p...)

	var frames []*Frame
	for {
		// Bytes before the next marker are noise.
		i := bytes.IndexByte(f.buf, Marker)
		if i < 0 {
			f.discarded += uint64(len(f.buf))
			f.buf = f.buf[:0]
			return frames
		}
		if i > 0 {
			f.discarded += uint64(i)
			f.buf = f.buf[i:]
		}

		if len(f.buf) < FrameLength {
			f.compact()
			return frames
		}

		frame, err := Decode(f.buf[:FrameLength])
		if err != nil {
			if errors.Is(err, ErrChecksumMismatch) {
				f.checksum++
			} else {
				f.malformed++
			}
			// Skip only the marker byte; the next valid frame may start
			// anywhere inside the rejected window.
			f.discarded++
			f.buf = f.buf[1:]
			continue
		}

		frames = append(frames, frame)
		f.buf = f.buf[FrameLength:]
	}
}

// compact copies the unconsumed remainder to the front of the backing array
// so the buffer does not creep forward across many partial deliveries.
func (f *Framer) compact() {
	if len(f.buf) == 0 || cap(f.buf) >= len(f.buf)+FrameLength {
		return
	}
	fresh := make([]byte, len(f.buf), 4*FrameLength)
	copy(fresh, f.buf)
	f.buf = fresh
}

// Buffered returns the number of unconsumed bytes held by the framer.
func (f *Framer) Buffered() int {
	return len(f.buf)
}

// Discarded returns the total count of noise bytes skipped while
// resynchronizing, including the marker bytes of rejected frames.
func (f *Framer) Discarded() uint64 {
	return f.discarded
}

// ChecksumErrors returns the number of frame windows rejected for a checksum
// mismatch.
func (f *Framer) ChecksumErrors() uint64 {
	return f.checksum
}

// MalformedFrames returns the number of frame windows rejected for a
// structural decode failure.
func (f *Framer) MalformedFrames() uint64 {
	return f.malformed
}
