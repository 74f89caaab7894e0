// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fixed

// quarter is the fractional byte of a quarter turn (0.5 half turns).
const quarter = 1 << (Shift - 1)

// Sinpi returns sin(x·π) for x in half turns.
//
// The fractional byte selects a point in [0, π); the second quarter is
// folded back onto the first so the table only covers a quarter wave.
// An odd integer part selects the negative half of the period. The result
// peaks at ±255/256 because the table stores 8-bit amplitudes.
func (x Int8_8) Sinpi() Int8_8 {
	f := int(x.Frac())
	if f > quarter {
		f = 1<<Shift - f
	}
	y := Int8_8(sinpiTable[f])
	if x.Int()&1 != 0 {
		y = -y
	}
	return y
}

// Cospi returns cos(x·π) for x in half turns, computed as Sinpi(x+0.5).
func (x Int8_8) Cospi() Int8_8 {
	return x.Add(Half).Sinpi()
}

// SinpiTable returns a copy of the quarter-wave lookup table.
func SinpiTable() [TableSize]uint8 {
	return sinpiTable
}
