// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

import "fmt"

// FormatDataNumber returns a human-readable name for a data number.
func FormatDataNumber(dataNumber uint16) string {
	switch dataNumber {
	case DataCurrentFloor:
		return "CURRENT_FLOOR"
	case DataDestinationFloor:
		return "DESTINATION_FLOOR"
	case DataLoad:
		return "LOAD"
	default:
		return "UNKNOWN"
	}
}

// FormatValue renders a data value according to its data number:
// floors as "3F"/"B1F", cleared destinations as "none", loads in kilograms.
// Unknown data numbers fall back to raw hex.
func FormatValue(dataNumber, dataValue uint16) string {
	switch dataNumber {
	case DataCurrentFloor:
		return Floor(int16(dataValue)).String()
	case DataDestinationFloor:
		if dataValue == DestinationNone {
			return "none"
		}
		return Floor(int16(dataValue)).String()
	case DataLoad:
		return fmt.Sprintf("%d kg", dataValue)
	default:
		return fmt.Sprintf("0x%04X", dataValue)
	}
}

// FormatFrame returns a one-line human-readable rendering of a frame.
func FormatFrame(f *Frame) string {
	return fmt.Sprintf("[%s] %s station=%04d cmd=%c value=%04X (%s)\n",
		f.Timestamp.Format("15:04:05.000"),
		FormatDataNumber(f.DataNumber),
		f.Station,
		f.Command,
		f.DataValue,
		FormatValue(f.DataNumber, f.DataValue),
	)
}

// FormatRaw renders a received chunk as paired HEX and ASCII rows, the
// layout the controller vendor's debug logs use. Non-printable bytes show
// as '.'.
func FormatRaw(data []byte) string {
	hex := make([]byte, 0, len(data)*2)
	ascii := make([]byte, 0, len(data))
	for _, b := range data {
		hex = fmt.Appendf(hex, "%02X", b)
		if b >= 0x20 && b <= 0x7E {
			ascii = append(ascii, b)
		} else {
			ascii = append(ascii, '.')
		}
	}
	return fmt.Sprintf("  HEX  : %s\n  ASCII: %s\n", hex, ascii)
}
