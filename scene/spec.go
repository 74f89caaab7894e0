// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"

	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
)

// Spec is one authored shape. Which fields apply depends on Kind, which is
// one of the names of shape.Kind.
type Spec struct {
	Kind string `toml:"kind"`
	Placement

	// arc, circle, ellipse
	CX float64 `toml:"cx"`
	CY float64 `toml:"cy"`
	R  float64 `toml:"r"`
	// arc, ellipse, rect corners
	RX float64 `toml:"rx"`
	RY float64 `toml:"ry"`
	// arc, in half turns
	T0 float64 `toml:"t0"`
	T1 float64 `toml:"t1"`
	// rect
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// line
	X1 float64 `toml:"x1"`
	Y1 float64 `toml:"y1"`
	X2 float64 `toml:"x2"`
	Y2 float64 `toml:"y2"`
	// poly
	Polygon bool        `toml:"polygon"`
	Points  [][]float64 `toml:"points"`
}

func (sp *Spec) validate() error {
	k, ok := shape.ParseKind(sp.Kind)
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrSyntax, sp.Kind)
	}
	if k != shape.KindPoly {
		return nil
	}
	if len(sp.Points) == 0 {
		return fmt.Errorf("%w: poly without points", ErrSyntax)
	}
	for i, p := range sp.Points {
		if len(p) != 2 {
			return fmt.Errorf("%w: poly point %d has %d coordinates", ErrSyntax, i, len(p))
		}
	}
	return nil
}

// Shape converts the spec with placement p applied. Offsets move centers
// and corners and scaling applies to radii and sizes, except for lines,
// which are offset and then scaled about the origin, and polys, which are
// scaled about their first point and then offset.
func (sp *Spec) Shape(p Placement) (shape.Shape, error) {
	if err := sp.validate(); err != nil {
		return nil, err
	}
	scale, xo, yo := p.values()
	var c converter

	var s shape.Shape
	switch k, _ := shape.ParseKind(sp.Kind); k {
	case shape.KindArc:
		s = &shape.Arc{
			CX: c.u("cx", sp.CX+xo), CY: c.u("cy", sp.CY+yo),
			RX: c.u("rx", sp.RX*scale), RY: c.u("ry", sp.RY*scale),
			T0: c.i("t0", sp.T0), T1: c.i("t1", sp.T1),
		}
	case shape.KindRect:
		s = &shape.Rect{
			X: c.u("x", sp.X+xo), Y: c.u("y", sp.Y+yo),
			Width: c.u("width", sp.Width*scale), Height: c.u("height", sp.Height*scale),
			RX: c.u("rx", sp.RX*scale), RY: c.u("ry", sp.RY*scale),
		}
	case shape.KindCircle:
		s = &shape.Circle{
			CX: c.u("cx", sp.CX+xo), CY: c.u("cy", sp.CY+yo),
			R: c.u("r", sp.R*scale),
		}
	case shape.KindEllipse:
		s = &shape.Ellipse{
			CX: c.u("cx", sp.CX+xo), CY: c.u("cy", sp.CY+yo),
			RX: c.u("rx", sp.RX*scale), RY: c.u("ry", sp.RY*scale),
		}
	case shape.KindLine:
		s = &shape.Line{
			X1: c.u("x1", (sp.X1+xo)*scale), Y1: c.u("y1", (sp.Y1+yo)*scale),
			X2: c.u("x2", (sp.X2+xo)*scale), Y2: c.u("y2", (sp.Y2+yo)*scale),
		}
	case shape.KindPoly:
		bx, by := sp.Points[0][0], sp.Points[0][1]
		poly := &shape.Poly{Closed: sp.Polygon, Points: make([]shape.Point, len(sp.Points))}
		for i, pt := range sp.Points {
			poly.Points[i] = shape.Point{
				X: c.u("x", (pt[0]-bx)*scale+xo+bx),
				Y: c.u("y", (pt[1]-by)*scale+yo+by),
			}
		}
		s = poly
	}
	if c.err != nil {
		return nil, c.err
	}
	return s, nil
}

// converter turns authored numbers into fixed point, keeping the first
// range error.
type converter struct {
	err error
}

func (c *converter) u(name string, v float64) fixed.Uint8_8 {
	if c.err == nil && !(v >= 0 && v < 256) {
		c.err = fmt.Errorf("%w: %s = %v, want [0, 256)", ErrRange, name, v)
	}
	return fixed.UFromFloat(v)
}

func (c *converter) i(name string, v float64) fixed.Int8_8 {
	if c.err == nil && !(v >= -128 && v < 128) {
		c.err = fmt.Errorf("%w: %s = %v, want [-128, 128)", ErrRange, name, v)
	}
	return fixed.IFromFloat(v)
}
