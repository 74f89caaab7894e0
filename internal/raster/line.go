// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
)

// line traces a segment with a DDA. The step count is the longer axis in
// whole pixels and the per-step delta is the signed total divided by it,
// truncated. The first endpoint is emitted, the second is not, so joined
// segments do not double their shared vertex. A segment shorter than one
// pixel emits nothing.
func (e *Engine) line(x1, y1, x2, y2 fixed.Uint8_8) {
	dx := int32(x2) - int32(x1)
	dy := int32(y2) - int32(y1)

	steps := max(abs32(dx), abs32(dy)) >> fixed.Shift
	if steps == 0 {
		return
	}

	sx, sy := dx/steps, dy/steps
	x, y := int32(x1), int32(y1)
	for i := int32(0); i < steps; i++ {
		e.emit(fixed.Uint8_8(x), fixed.Uint8_8(y))
		x += sx
		y += sy
	}
}

// poly traces segment i from point i to point (i+1) mod n.
func (e *Engine) poly(p *shape.Poly) {
	n := len(p.Points)
	for i := range p.Segments() {
		a, b := p.Points[i], p.Points[(i+1)%n]
		e.line(a.X, a.Y, b.X, b.Y)
	}
}

// rect traces an outline. Corner radii are clamped to half the side; with
// a zero radius on either axis the corners are sharp.
func (e *Engine) rect(r *shape.Rect) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X.Add(r.Width), r.Y.Add(r.Height)
	rx := r.RX.Min(r.Width >> 1)
	ry := r.RY.Min(r.Height >> 1)

	if rx == 0 || ry == 0 {
		e.line(x0, y0, x1, y0)
		e.line(x1, y0, x1, y1)
		e.line(x1, y1, x0, y1)
		e.line(x0, y1, x0, y0)
		return
	}

	e.line(x0.Add(rx), y0, x1.Sub(rx), y0)
	e.arc(x1.Sub(rx), y0.Add(ry), rx, ry, -fixed.Half, 0)
	e.line(x1, y0.Add(ry), x1, y1.Sub(ry))
	e.arc(x1.Sub(rx), y1.Sub(ry), rx, ry, 0, fixed.Half)
	e.line(x1.Sub(rx), y1, x0.Add(rx), y1)
	e.arc(x0.Add(rx), y1.Sub(ry), rx, ry, fixed.Half, fixed.One)
	e.line(x0, y1.Sub(ry), x0, y0.Add(ry))
	e.arc(x0.Add(rx), y0.Add(ry), rx, ry, fixed.One, fixed.One+fixed.Half)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
