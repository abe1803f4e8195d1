// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Towerline Systems

package enq

// Checksum computes the 8-bit additive checksum over the given bytes.
// On the wire it covers the 13 bytes between the marker and the checksum
// field and is rendered as 2 uppercase hex digits.
func Checksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data {
		sum += b
	}
	return sum
}
