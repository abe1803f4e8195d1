// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

import (
	"errors"
	"fmt"
	"time"
)

// Decode failure taxonomy. Both conditions are recoverable: callers reject
// the frame and resynchronize, they do not abort the read loop.
var (
	// ErrMalformedFrame reports a structural decode failure: missing marker
	// byte, short input, or a non-digit character in a digit field.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrChecksumMismatch reports a structurally valid frame whose
	// transmitted checksum disagrees with the recomputed one.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Encode encodes a frame to its 16-byte wire representation:
//
//	[0x05][station: 4 dec][command: 1][dataNumber: 4 dec][dataValue: 4 hex][checksum: 2 hex]
//
// Digit fields travel as ASCII characters; hex digits are uppercase.
func Encode(f *Frame) ([]byte, error) {
	if f.Station > maxDecimalField {
		return nil, fmt.Errorf("station %d does not fit in 4 decimal digits", f.Station)
	}
	if f.DataNumber > maxDecimalField {
		return nil, fmt.Errorf("data number %d does not fit in 4 decimal digits", f.DataNumber)
	}

	buf := make([]byte, 0, FrameLength)
	buf = append(buf, Marker)
	buf = fmt.Appendf(buf, "%04d", f.Station)
	buf = append(buf, f.Command)
	buf = fmt.Appendf(buf, "%04d", f.DataNumber)
	buf = fmt.Appendf(buf, "%04X", f.DataValue)
	buf = fmt.Appendf(buf, "%02X", Checksum(buf[offStation:offChecksum]))
	return buf, nil
}

// Decode decodes the 16-byte frame at the start of data.
//
// It returns ErrMalformedFrame for structural failures and
// ErrChecksumMismatch when the transmitted checksum disagrees with the
// recomputed one (both wrapped with detail, test with errors.Is). A frame
// returned without error re-encodes to the exact input bytes.
func Decode(data []byte) (*Frame, error) {
	if len(data) < FrameLength {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedFrame, FrameLength, len(data))
	}
	if data[0] != Marker {
		return nil, fmt.Errorf("%w: missing marker byte, got 0x%02X", ErrMalformedFrame, data[0])
	}

	station, err := parseDecimal(data[offStation:offCommand])
	if err != nil {
		return nil, fmt.Errorf("station field: %w", err)
	}
	dataNumber, err := parseDecimal(data[offDataNumber:offDataValue])
	if err != nil {
		return nil, fmt.Errorf("data number field: %w", err)
	}
	dataValue, err := parseHex(data[offDataValue:offChecksum])
	if err != nil {
		return nil, fmt.Errorf("data value field: %w", err)
	}
	carried, err := parseHex(data[offChecksum:FrameLength])
	if err != nil {
		return nil, fmt.Errorf("checksum field: %w", err)
	}

	computed := Checksum(data[offStation:offChecksum])
	if uint8(carried) != computed {
		return nil, fmt.Errorf("%w: frame carries 0x%02X, computed 0x%02X", ErrChecksumMismatch, carried, computed)
	}

	return &Frame{
		Station:    station,
		Command:    data[offCommand],
		DataNumber: dataNumber,
		DataValue:  dataValue,
		Timestamp:  time.Now(),
	}, nil
}

// parseDecimal parses an ASCII decimal digit field.
func parseDecimal(b []byte) (uint16, error) {
	var v uint16
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: non-decimal byte 0x%02X", ErrMalformedFrame, c)
		}
		v = v*10 + uint16(c-'0')
	}
	return v, nil
}

// parseHex parses an uppercase ASCII hex digit field. Lowercase digits are
// rejected: accepting them would break the round-trip law, since re-encoding
// always emits uppercase.
func parseHex(b []byte) (uint16, error) {
	var v uint16
	for _, c := range b {
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, fmt.Errorf("%w: non-hex byte 0x%02X", ErrMalformedFrame, c)
		}
		v = v<<4 | d
	}
	return v, nil
}
