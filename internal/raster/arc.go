// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	xfixed "golang.org/x/image/math/fixed"

	"github.com/gogpu/xydoodle/fixed"
)

// angleShift is the number of extra fractional bits sample angles are
// computed with before rounding to Q8.8. The wide angle is an
// x/image Int52_12 value; only its format is used, the arithmetic is plain
// integer division.
const angleShift = 12 - fixed.Shift

// quadrantBits is log2 of a quarter turn in raw angle units.
const quadrantBits = fixed.Shift - 1

// fullSweep is the sweep used when a non-empty request reduces to zero:
// one full turn less one LSB.
const fullSweep = fixed.Uint8_8(2<<fixed.Shift - 1)

// arc traces an elliptical arc starting at t0. The sweep is
// |(t1-t0) mod 2| half turns; a non-empty request that reduces to a zero
// sweep is drawn as an almost full turn.
func (e *Engine) arc(cx, cy, rx, ry fixed.Uint8_8, t0, t1 fixed.Int8_8) {
	r := rx.Max(ry)
	if r == 0 {
		return
	}

	total := t1.Sub(t0).Mod(2).Abs()
	if total == 0 && t0 != t1 {
		total = fullSweep
	}

	steps := arcSteps(r, total)
	if steps == 0 {
		return
	}

	// Each angle is derived from t0 rather than accumulated, so truncating
	// the per-step delta cannot leave the sweep short.
	start := xfixed.Int52_12(int64(t0) << angleShift)
	span := int64(total) << angleShift
	for i := range int64(steps) {
		t := start + xfixed.Int52_12(span*i/int64(steps))
		a := fixed.Int8_8((t + 1<<(angleShift-1)) >> angleShift)
		e.emit(fixed.MulAdd(cx, rx, a.Cospi()), fixed.MulAdd(cy, ry, a.Sinpi()))
	}
}

// arcSteps returns the sample count for sweeping total half turns at
// radius r: the integer radius per whole quadrant plus the rounded radius
// scaled by the remaining fraction of a quadrant. This keeps the sample
// density roughly proportional to arc length.
func arcSteps(r, total fixed.Uint8_8) int {
	quadrants := int(total >> quadrantBits)
	frac := total & (1<<quadrantBits - 1)
	partial := r.Mul(frac << 1)
	return int(r.Int())*quadrants + int(partial.Round())
}
