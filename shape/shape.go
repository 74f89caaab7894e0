// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shape defines the geometric primitives a doodle is made of.
//
// Shape is a closed sum type: only the pointer variants declared here
// implement it, and consumers recover the concrete variant with a type
// switch. Coordinates and radii are unsigned Q8.8 values in device space
// ([0, 256) on both axes); angles are signed Q8.8 half turns.
package shape

import (
	"fmt"

	"github.com/gogpu/xydoodle/fixed"
)

// Kind identifies a shape variant. The numeric values are the wire tags
// used by the catalog format and must not change.
type Kind uint8

const (
	// KindArc is an elliptical arc.
	KindArc Kind = iota
	// KindRect is an axis-aligned rectangle with optional rounded corners.
	KindRect
	// KindCircle is a full circle.
	KindCircle
	// KindEllipse is a full axis-aligned ellipse.
	KindEllipse
	// KindLine is a straight segment.
	KindLine
	// KindPoly is a polyline, or a polygon when closed.
	KindPoly

	kindCount
)

var kindNames = [kindCount]string{
	KindArc:     "arc",
	KindRect:    "rect",
	KindCircle:  "circle",
	KindEllipse: "ellipse",
	KindLine:    "line",
	KindPoly:    "poly",
}

// Valid reports whether k names a declared shape variant.
func (k Kind) Valid() bool {
	return k < kindCount
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Shape is implemented by *Arc, *Rect, *Circle, *Ellipse, *Line and *Poly.
type Shape interface {
	Kind() Kind
	shape()
}

// Point is a coordinate pair in device space.
type Point struct {
	X, Y fixed.Uint8_8
}

// Pt returns the point at integer coordinates (x, y).
func Pt(x, y uint8) Point {
	return Point{X: fixed.U(x), Y: fixed.U(y)}
}

// Arc is an elliptical arc around (CX, CY) with radii RX and RY, swept from
// T0 to T1 half turns. T0 may be greater than T1; the sweep is the absolute
// difference reduced modulo one full turn.
type Arc struct {
	CX, CY fixed.Uint8_8
	RX, RY fixed.Uint8_8
	T0, T1 fixed.Int8_8
}

// Rect is an axis-aligned rectangle with corner radii RX and RY.
type Rect struct {
	X, Y          fixed.Uint8_8
	Width, Height fixed.Uint8_8
	RX, RY        fixed.Uint8_8
}

// Circle is a full circle.
type Circle struct {
	CX, CY fixed.Uint8_8
	R      fixed.Uint8_8
}

// Ellipse is a full axis-aligned ellipse.
type Ellipse struct {
	CX, CY fixed.Uint8_8
	RX, RY fixed.Uint8_8
}

// Line is a segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1 fixed.Uint8_8
	X2, Y2 fixed.Uint8_8
}

// Poly is an ordered point list. A closed Poly is a polygon whose last
// point connects back to the first.
type Poly struct {
	Closed bool
	Points []Point
}

// Segments returns the number of line segments the poly decomposes into:
// len(Points) + 1 - 1 when closed, len(Points) - 1 when open, and zero for
// an empty point list.
func (p *Poly) Segments() int {
	n := len(p.Points)
	if n == 0 {
		return 0
	}
	if p.Closed {
		return n
	}
	return n - 1
}

func (*Arc) Kind() Kind     { return KindArc }
func (*Rect) Kind() Kind    { return KindRect }
func (*Circle) Kind() Kind  { return KindCircle }
func (*Ellipse) Kind() Kind { return KindEllipse }
func (*Line) Kind() Kind    { return KindLine }
func (*Poly) Kind() Kind    { return KindPoly }

func (*Arc) shape()     {}
func (*Rect) shape()    {}
func (*Circle) shape()  {}
func (*Ellipse) shape() {}
func (*Line) shape()    {}
func (*Poly) shape()    {}

// Compile-time interface checks.
var (
	_ Shape = (*Arc)(nil)
	_ Shape = (*Rect)(nil)
	_ Shape = (*Circle)(nil)
	_ Shape = (*Ellipse)(nil)
	_ Shape = (*Line)(nil)
	_ Shape = (*Poly)(nil)
)
