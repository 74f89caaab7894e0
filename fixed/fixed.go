// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fixed implements the Q8.8 fixed-point arithmetic used by the
// vector display engine.
//
// Two 16-bit flavors exist: [Uint8_8] for coordinates and radii, which are
// never negative, and [Int8_8] for angles and differences. Both hold 8
// integer bits and 8 fractional bits, so one least significant bit is 1/256.
// Arithmetic wraps like the 16-bit registers of the target microcontroller;
// products use a 32-bit intermediate and truncate.
//
// Angles are measured in half turns: 1.0 is π radians and 2.0 is a full turn.
// [Int8_8.Sinpi] and [Int8_8.Cospi] evaluate sin(x·π) and cos(x·π) from a
// quarter-wave lookup table.
//
// The naming follows golang.org/x/image/math/fixed (Int26_6, Int52_12).
package fixed

//go:generate go run ../cmd/sinpigen -o sinpi_table.go

// Fixed-point layout constants.
const (
	// Shift is the number of fractional bits.
	Shift = 8
	// Mask extracts the fractional byte of a raw value.
	Mask = 1<<Shift - 1
)

// Uint8_8 is an unsigned Q8.8 fixed-point number covering [0, 256).
type Uint8_8 uint16

// Int8_8 is a signed Q8.8 fixed-point number covering [-128, 128).
type Int8_8 int16

// Common values.
const (
	// UOne is 1.0 as an unsigned value.
	UOne Uint8_8 = 1 << Shift
	// One is 1.0 as a signed value.
	One Int8_8 = 1 << Shift
	// Half is 0.5 half turns, a quarter of a full turn.
	Half Int8_8 = 1 << (Shift - 1)
	// Eps is the smallest positive signed value.
	Eps Int8_8 = 1
	// UMax is the largest unsigned value.
	UMax Uint8_8 = 0xFFFF
)

// U returns the unsigned value with integer part n and no fraction.
func U(n uint8) Uint8_8 {
	return Uint8_8(n) << Shift
}

// I returns the signed value with integer part n and no fraction.
func I(n int8) Int8_8 {
	return Int8_8(n) << Shift
}

// UFromFloat converts f to Uint8_8, truncating toward zero.
// Values outside [0, 256) wrap; callers validate ranges at authoring time.
func UFromFloat(f float64) Uint8_8 {
	return Uint8_8(int64(f * (1 << Shift)))
}

// IFromFloat converts f to Int8_8, truncating toward zero.
// Values outside [-128, 128) wrap.
func IFromFloat(f float64) Int8_8 {
	return Int8_8(int64(f * (1 << Shift)))
}

// Float returns x as a float64. The conversion is exact.
func (x Uint8_8) Float() float64 {
	return float64(x) / (1 << Shift)
}

// Int returns the integer byte of x.
func (x Uint8_8) Int() uint8 {
	return uint8(x >> Shift)
}

// Frac returns the fractional byte of x.
func (x Uint8_8) Frac() uint8 {
	return uint8(x & Mask)
}

// Add returns x+y, wrapping on overflow.
func (x Uint8_8) Add(y Uint8_8) Uint8_8 {
	return x + y
}

// Sub returns x-y, wrapping on underflow.
func (x Uint8_8) Sub(y Uint8_8) Uint8_8 {
	return x - y
}

// Mul returns x*y using a 32-bit product shifted right by 8 and truncated
// to 16 bits.
func (x Uint8_8) Mul(y Uint8_8) Uint8_8 {
	return Uint8_8((uint32(x) * uint32(y)) >> Shift)
}

// Div returns x/y. The dividend is widened to 32 bits and shifted before
// dividing. A zero divisor saturates to UMax.
func (x Uint8_8) Div(y Uint8_8) Uint8_8 {
	if y == 0 {
		return UMax
	}
	return Uint8_8((uint32(x) << Shift) / uint32(y))
}

// Min returns the smaller of x and y.
func (x Uint8_8) Min(y Uint8_8) Uint8_8 {
	if x <= y {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func (x Uint8_8) Max(y Uint8_8) Uint8_8 {
	if x >= y {
		return x
	}
	return y
}

// Round returns the integer byte of x rounded half up. The high bit of the
// fraction decides the rounding; 255.5 wraps to 0 like the 8-bit port.
func (x Uint8_8) Round() uint8 {
	return x.Int() + x.Frac()>>(Shift-1)
}

// Signed reinterprets the bits of x as a signed value.
func (x Uint8_8) Signed() Int8_8 {
	return Int8_8(x)
}

// MulAdd returns c + r*s. The product of an unsigned radius and a signed
// trig value is formed in 32 bits so that radii above 128 keep their sign.
// The sum wraps to 16 bits.
func MulAdd(c, r Uint8_8, s Int8_8) Uint8_8 {
	return Uint8_8(int32(c) + (int32(r)*int32(s))>>Shift)
}

// Float returns x as a float64. The conversion is exact.
func (x Int8_8) Float() float64 {
	return float64(x) / (1 << Shift)
}

// Int returns the integer byte of x, the floor of its value.
func (x Int8_8) Int() int8 {
	return int8(x >> Shift)
}

// Frac returns the fractional byte of x.
func (x Int8_8) Frac() uint8 {
	return uint8(x & Mask)
}

// Add returns x+y, wrapping on overflow.
func (x Int8_8) Add(y Int8_8) Int8_8 {
	return x + y
}

// Sub returns x-y, wrapping on overflow.
func (x Int8_8) Sub(y Int8_8) Int8_8 {
	return x - y
}

// Mul returns x*y using a 32-bit product shifted right by 8 and truncated
// to 16 bits.
func (x Int8_8) Mul(y Int8_8) Int8_8 {
	return Int8_8((int32(x) * int32(y)) >> Shift)
}

// Min returns the smaller of x and y.
func (x Int8_8) Min(y Int8_8) Int8_8 {
	if x <= y {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func (x Int8_8) Max(y Int8_8) Int8_8 {
	if x >= y {
		return x
	}
	return y
}

// Abs returns |x| as an unsigned value. The negation is two's complement,
// so -128.0 becomes 128.0.
func (x Int8_8) Abs() Uint8_8 {
	if x < 0 {
		return Uint8_8(-x)
	}
	return Uint8_8(x)
}

// Mod returns the remainder of x divided by n whole units. The result has
// the sign of x, matching 16-bit C remainder semantics. Mod panics if n is 0.
func (x Int8_8) Mod(n int8) Int8_8 {
	return Int8_8(int16(x) % (int16(n) << Shift))
}

// Unsigned reinterprets the bits of x as an unsigned value.
func (x Int8_8) Unsigned() Uint8_8 {
	return Uint8_8(x)
}
