// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts shapes into beam samples for a vector display.
//
// All geometry is evaluated in Q8.8 fixed point (package fixed). Lines use
// a digital differential analyzer, arcs step an angle whose sample count
// follows the swept arc length, and polys decompose into lines. Every traced
// shape ends with a single Disable so the beam moves to the next shape dark.
package raster

import (
	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
	"github.com/gogpu/xydoodle/sink"
)

// Engine traces shapes into a sink.
//
// Engine is not safe for concurrent use.
type Engine struct {
	sink    sink.Sink
	samples uint64
}

// New returns an engine writing to s.
func New(s sink.Sink) *Engine {
	return &Engine{sink: s}
}

// Samples returns the number of samples emitted so far.
func (e *Engine) Samples() uint64 {
	return e.samples
}

// Draw traces one shape. Nil shapes and variants without a tracer are
// ignored; Draw never panics on shape data.
func (e *Engine) Draw(s shape.Shape) {
	switch s := s.(type) {
	case *shape.Line:
		if s == nil {
			return
		}
		e.line(s.X1, s.Y1, s.X2, s.Y2)
	case *shape.Arc:
		if s == nil {
			return
		}
		e.arc(s.CX, s.CY, s.RX, s.RY, s.T0, s.T1)
	case *shape.Poly:
		if s == nil {
			return
		}
		e.poly(s)
	case *shape.Circle:
		if s == nil {
			return
		}
		e.arc(s.CX, s.CY, s.R, s.R, 0, fixed.I(2))
	case *shape.Ellipse:
		if s == nil {
			return
		}
		e.arc(s.CX, s.CY, s.RX, s.RY, 0, fixed.I(2))
	case *shape.Rect:
		if s == nil {
			return
		}
		e.rect(s)
	default:
		return
	}
	e.sink.Disable()
}

// DrawAll traces shapes in order.
func (e *Engine) DrawAll(shapes []shape.Shape) {
	for _, s := range shapes {
		e.Draw(s)
	}
}

func (e *Engine) emit(x, y fixed.Uint8_8) {
	e.sink.Accept(x.Round(), y.Round(), sink.Full)
	e.samples++
}
