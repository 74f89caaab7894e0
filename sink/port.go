// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sink

// Port bit assignments of the reference board: X on PORTD[7:0], Y split
// over PORTB[5:0] (high six bits) and PORTC[5:4] (low two bits), intensity
// on PORTC[3:0].
const (
	PortDXBits uint8 = 0xFF
	PortBYBits uint8 = 0x3F
	PortCYBits uint8 = 0x30
	PortCZBits uint8 = 0x0F

	portCYLowBits = 2 // popcount(PortCYBits)
	portCZBits    = 4 // popcount(PortCZBits)
)

// PortBits encodes a sample into the three port bytes of the reference
// board. Writing the bytes is the board support package's job; it must
// update all three ports before the beam settles.
func PortBits(x, y, z uint8) (portB, portC, portD uint8) {
	portB = (y >> portCYLowBits) & PortBYBits
	portC = ((y << portCZBits) & PortCYBits) | (z & PortCZBits)
	portD = x & PortDXBits
	return portB, portC, portD
}
