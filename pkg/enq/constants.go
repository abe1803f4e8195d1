// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

// Package enq provides a reference Go implementation of the ENQ elevator
// status protocol.
//
// ENQ is a fixed-length ASCII protocol spoken by elevator controllers over a
// low-speed serial link (9600 baud, 8 data bits, even parity, 1 stop bit).
// Each message is exactly 16 bytes and carries one status value: current
// floor, destination floor, or car load. This package provides frame
// encoding/decoding, checksum validation, and stream resynchronization.
package enq

// Marker is the fixed leading byte of every frame (ASCII ENQ).
const Marker = 0x05

// Frame layout
const (
	FrameLength    = 16
	checksumLength = 2

	// Field offsets within a frame
	offStation    = 1
	offCommand    = 5
	offDataNumber = 6
	offDataValue  = 10
	offChecksum   = FrameLength - checksumLength
)

// Commands. The deployment only uses CommandNotify, but the field is kept
// open so future command codes decode without a protocol revision.
const (
	CommandNotify byte = 'W' // notify/write, 0x57
)

// Data numbers select the meaning of the data value field.
const (
	DataCurrentFloor     uint16 = 1
	DataDestinationFloor uint16 = 2
	DataLoad             uint16 = 3
)

// DestinationNone is the destination data value meaning "no active
// destination".
const DestinationNone uint16 = 0

// Field value limits. Station and data number travel as 4 decimal digits.
const maxDecimalField = 9999
