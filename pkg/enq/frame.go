// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

import (
	"fmt"
	"time"
)

// Frame represents a decoded ENQ protocol message.
type Frame struct {
	Station    uint16 // 4-digit decimal unit identifier
	Command    byte   // message intent, CommandNotify in this deployment
	DataNumber uint16 // selects the meaning of DataValue
	DataValue  uint16 // 4 hex digits on the wire, interpretation per DataNumber
	Timestamp  time.Time
}

// Floor is a signed floor index. Positive values are above-ground floors
// (3 = "3F"), negative values are basement floors (-1 = "B1F").
type Floor int16

// String renders the floor in display form, e.g. "3F" or "B1F".
func (f Floor) String() string {
	if f < 0 {
		return fmt.Sprintf("B%dF", -int(f))
	}
	return fmt.Sprintf("%dF", int(f))
}

// FloorValue interprets the data value as a signed floor index.
// Only meaningful for DataCurrentFloor and DataDestinationFloor frames.
func (fr *Frame) FloorValue() Floor {
	return Floor(int16(fr.DataValue))
}

// LoadKg interprets the data value as a car load in kilograms.
// Only meaningful for DataLoad frames.
func (fr *Frame) LoadKg() uint16 {
	return fr.DataValue
}

// Frame builder functions create Frame structs ready for encoding. These are
// the producer-side counterparts of the decode helpers above and keep the
// DataNumber/DataValue pairing in one place.

// NewCurrentFloorFrame creates a current-floor notification (dataNumber 1).
func NewCurrentFloorFrame(station uint16, floor Floor) *Frame {
	return &Frame{
		Station:    station,
		Command:    CommandNotify,
		DataNumber: DataCurrentFloor,
		DataValue:  uint16(int16(floor)),
	}
}

// NewDestinationFrame creates a destination-floor notification (dataNumber 2).
func NewDestinationFrame(station uint16, floor Floor) *Frame {
	return &Frame{
		Station:    station,
		Command:    CommandNotify,
		DataNumber: DataDestinationFloor,
		DataValue:  uint16(int16(floor)),
	}
}

// NewClearDestinationFrame creates a destination notification meaning
// "no active destination" (dataNumber 2, value 0).
func NewClearDestinationFrame(station uint16) *Frame {
	return &Frame{
		Station:    station,
		Command:    CommandNotify,
		DataNumber: DataDestinationFloor,
		DataValue:  DestinationNone,
	}
}

// NewLoadFrame creates a car-load notification (dataNumber 3).
func NewLoadFrame(station uint16, kg uint16) *Frame {
	return &Frame{
		Station:    station,
		Command:    CommandNotify,
		DataNumber: DataLoad,
		DataValue:  kg,
	}
}
