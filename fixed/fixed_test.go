// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fixed

import (
	"math"
	"testing"
)

// TestFloatRoundTrip checks every representable value survives a trip
// through float64.
func TestFloatRoundTrip(t *testing.T) {
	for raw := 0; raw <= math.MaxUint16; raw++ {
		u := Uint8_8(raw)
		if got := UFromFloat(u.Float()); got != u {
			t.Fatalf("UFromFloat(%v.Float()) = %#04x, want %#04x", u, uint16(got), uint16(u))
		}
		s := Int8_8(int16(uint16(raw)))
		if got := IFromFloat(s.Float()); got != s {
			t.Fatalf("IFromFloat(%d.Float()) = %d, want %d", s, got, s)
		}
	}
}

func TestFromFloatTruncates(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Uint8_8
	}{
		{"zero", 0, 0},
		{"one", 1, 256},
		{"half", 0.5, 128},
		{"below lsb", 0.003, 0},
		{"just under one", 0.999, 255},
		{"max", 255.99609375, 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UFromFloat(tt.in); got != tt.want {
				t.Errorf("UFromFloat(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
	if got := IFromFloat(-1.5); got != -384 {
		t.Errorf("IFromFloat(-1.5) = %d, want -384", got)
	}
}

func TestUnsignedArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Uint8_8
		want Uint8_8
	}{
		{"add", U(3).Add(UFromFloat(0.5)), UFromFloat(3.5)},
		{"add wraps", U(255).Add(U(1)), 0},
		{"sub", U(3).Sub(U(1)), U(2)},
		{"sub wraps", U(0).Sub(1), UMax},
		{"mul", U(3).Mul(UFromFloat(0.5)), UFromFloat(1.5)},
		{"mul truncates", Uint8_8(1).Mul(Uint8_8(1)), 0},
		{"mul wraps", U(16).Mul(U(16)), 0},
		{"div", U(3).Div(U(2)), UFromFloat(1.5)},
		{"div truncates", U(1).Div(U(3)), 85},
		{"div by zero saturates", U(1).Div(0), UMax},
		{"min", U(3).Min(U(2)), U(2)},
		{"max", U(3).Max(U(2)), U(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestSignedArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Int8_8
		want Int8_8
	}{
		{"add", I(-3).Add(Half), IFromFloat(-2.5)},
		{"sub", I(1).Sub(I(3)), I(-2)},
		{"mul", I(-3).Mul(Half), IFromFloat(-1.5)},
		{"min", I(-1).Min(I(1)), I(-1)},
		{"max", I(-1).Max(I(1)), I(1)},
		{"mod positive", IFromFloat(3.5).Mod(2), IFromFloat(1.5)},
		{"mod keeps sign", IFromFloat(-3.5).Mod(2), IFromFloat(-1.5)},
		{"mod exact", I(4).Mod(2), 0},
		{"mod small", IFromFloat(0.25).Mod(2), IFromFloat(0.25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		in   Int8_8
		want Uint8_8
	}{
		{0, 0},
		{I(5), U(5)},
		{I(-5), U(5)},
		{-1, 1},
		{math.MinInt16, 0x8000},
	}
	for _, tt := range tests {
		if got := tt.in.Abs(); got != tt.want {
			t.Errorf("Int8_8(%d).Abs() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   Uint8_8
		want uint8
	}{
		{0, 0},
		{UFromFloat(1.49), 1},
		{UFromFloat(1.5), 2},
		{UFromFloat(1.99), 2},
		{UFromFloat(254.5), 255},
		{UFromFloat(255.5), 0},
	}
	for _, tt := range tests {
		if got := tt.in.Round(); got != tt.want {
			t.Errorf("%v.Round() = %d, want %d", tt.in.Float(), got, tt.want)
		}
	}
}

func TestIntFrac(t *testing.T) {
	x := IFromFloat(-0.25)
	if x.Int() != -1 || x.Frac() != 0xC0 {
		t.Errorf("-0.25 split = (%d, %#x), want (-1, 0xc0)", x.Int(), x.Frac())
	}
	u := UFromFloat(7.75)
	if u.Int() != 7 || u.Frac() != 0xC0 {
		t.Errorf("7.75 split = (%d, %#x), want (7, 0xc0)", u.Int(), u.Frac())
	}
}

func TestMulAdd(t *testing.T) {
	tests := []struct {
		name string
		c, r Uint8_8
		s    Int8_8
		want Uint8_8
	}{
		{"positive", U(128), U(64), One, U(192)},
		{"negative", U(128), U(64), -One, U(64)},
		{"large radius", U(200), U(200), -Half, U(100)},
		{"wraps below zero", U(10), UFromFloat(10.5), -One, UFromFloat(-0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MulAdd(tt.c, tt.r, tt.s); got != tt.want {
				t.Errorf("MulAdd(%v, %v, %v) = %d, want %d", tt.c.Float(), tt.r.Float(), tt.s.Float(), got, tt.want)
			}
		})
	}
}

func TestReinterpret(t *testing.T) {
	if got := Int8_8(-1).Unsigned(); got != UMax {
		t.Errorf("Int8_8(-1).Unsigned() = %d, want %d", got, UMax)
	}
	if got := UMax.Signed(); got != -1 {
		t.Errorf("UMax.Signed() = %d, want -1", got)
	}
}
