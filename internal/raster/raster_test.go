// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"testing"

	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
	"github.com/gogpu/xydoodle/sink"
)

func draw(s shape.Shape) *sink.Recorder {
	rec := &sink.Recorder{}
	New(rec).Draw(s)
	return rec
}

func line(x1, y1, x2, y2 uint8) *shape.Line {
	return &shape.Line{X1: fixed.U(x1), Y1: fixed.U(y1), X2: fixed.U(x2), Y2: fixed.U(y2)}
}

func TestLineHorizontal(t *testing.T) {
	rec := draw(line(0, 0, 10, 0))
	lit := rec.Lit()
	if len(lit) != 10 {
		t.Fatalf("got %d samples, want 10", len(lit))
	}
	for i, s := range lit {
		if s.Y != 0 {
			t.Errorf("sample %d: y = %d, want 0", i, s.Y)
		}
		if s.Z != sink.Full {
			t.Errorf("sample %d: z = %d, want %d", i, s.Z, sink.Full)
		}
		if i > 0 && s.X <= lit[i-1].X {
			t.Errorf("sample %d: x = %d not greater than %d", i, s.X, lit[i-1].X)
		}
	}
	if lit[0].X != 0 || lit[9].X != 9 {
		t.Errorf("x range = [%d, %d], want [0, 9]", lit[0].X, lit[9].X)
	}
	if rec.Disables() != 1 {
		t.Errorf("disables = %d, want 1", rec.Disables())
	}
}

func TestLineZeroLength(t *testing.T) {
	tests := []struct {
		name string
		line *shape.Line
	}{
		{"identical endpoints", line(5, 5, 5, 5)},
		{"origin", line(0, 0, 0, 0)},
		{"sub-pixel", &shape.Line{X1: fixed.U(5), Y1: fixed.U(5), X2: fixed.U(5) + 200, Y2: fixed.U(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := draw(tt.line)
			if n := len(rec.Lit()); n != 0 {
				t.Errorf("got %d samples, want 0", n)
			}
		})
	}
}

func TestLineDirections(t *testing.T) {
	tests := []struct {
		name         string
		line         *shape.Line
		steps        int
		first, last  sink.Sample
	}{
		{"reverse x", line(10, 3, 0, 3), 10, sink.Sample{X: 10, Y: 3, Z: sink.Full}, sink.Sample{X: 1, Y: 3, Z: sink.Full}},
		{"vertical", line(7, 20, 7, 0), 20, sink.Sample{X: 7, Y: 20, Z: sink.Full}, sink.Sample{X: 7, Y: 1, Z: sink.Full}},
		{"diagonal", line(0, 0, 8, 8), 8, sink.Sample{X: 0, Y: 0, Z: sink.Full}, sink.Sample{X: 7, Y: 7, Z: sink.Full}},
		{"shallow", line(0, 0, 10, 5), 10, sink.Sample{X: 0, Y: 0, Z: sink.Full}, sink.Sample{X: 9, Y: 5, Z: sink.Full}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit := draw(tt.line).Lit()
			if len(lit) != tt.steps {
				t.Fatalf("got %d samples, want %d", len(lit), tt.steps)
			}
			if lit[0] != tt.first {
				t.Errorf("first = %+v, want %+v", lit[0], tt.first)
			}
			if lit[len(lit)-1] != tt.last {
				t.Errorf("last = %+v, want %+v", lit[len(lit)-1], tt.last)
			}
		})
	}
}

func TestPolySegments(t *testing.T) {
	pts := []shape.Point{shape.Pt(0, 0), shape.Pt(10, 0), shape.Pt(10, 10)}

	closed := draw(&shape.Poly{Closed: true, Points: pts})
	if n := len(closed.Lit()); n != 30 {
		t.Errorf("closed triangle: %d samples, want 30 (3 segments)", n)
	}
	last := closed.Lit()[29]
	if last.X != 1 || last.Y != 1 {
		t.Errorf("closing segment ends at (%d, %d), want (1, 1)", last.X, last.Y)
	}

	open := draw(&shape.Poly{Points: pts})
	if n := len(open.Lit()); n != 20 {
		t.Errorf("open polyline: %d samples, want 20 (2 segments)", n)
	}
	if open.Disables() != 1 {
		t.Errorf("open polyline disables = %d, want 1", open.Disables())
	}
}

func TestPolyEmpty(t *testing.T) {
	for _, closed := range []bool{false, true} {
		rec := draw(&shape.Poly{Closed: closed})
		if n := len(rec.Lit()); n != 0 {
			t.Errorf("closed=%v: %d samples, want 0", closed, n)
		}
	}
}

func TestUnknownShapesAreIgnored(t *testing.T) {
	tests := []struct {
		name  string
		shape shape.Shape
	}{
		{"nil interface", nil},
		{"nil line", (*shape.Line)(nil)},
		{"nil arc", (*shape.Arc)(nil)},
		{"nil poly", (*shape.Poly)(nil)},
		{"nil rect", (*shape.Rect)(nil)},
		{"nil circle", (*shape.Circle)(nil)},
		{"nil ellipse", (*shape.Ellipse)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := draw(tt.shape)
			if len(rec.Samples) != 0 {
				t.Errorf("got %d samples, want none", len(rec.Samples))
			}
		})
	}
}

func TestRectSharp(t *testing.T) {
	rec := draw(&shape.Rect{X: fixed.U(10), Y: fixed.U(10), Width: fixed.U(20), Height: fixed.U(10)})
	if n := len(rec.Lit()); n != 60 {
		t.Errorf("got %d samples, want 60", n)
	}
	if rec.Disables() != 1 {
		t.Errorf("disables = %d, want 1", rec.Disables())
	}
}

func TestRectRounded(t *testing.T) {
	r := &shape.Rect{
		X: fixed.U(10), Y: fixed.U(10),
		Width: fixed.U(40), Height: fixed.U(40),
		RX: fixed.U(8), RY: fixed.U(8),
	}
	lit := draw(r).Lit()
	// Four edges of 24 pixels and four quarter arcs of 8 samples.
	if len(lit) != 4*24+4*8 {
		t.Fatalf("got %d samples, want %d", len(lit), 4*24+4*8)
	}
	for _, s := range lit {
		if s.X < 10 || s.X > 50 || s.Y < 10 || s.Y > 50 {
			t.Errorf("sample (%d, %d) outside the rectangle", s.X, s.Y)
		}
		if (s.X == 10 || s.X == 50) && (s.Y == 10 || s.Y == 50) {
			t.Errorf("rounded rect visits corner (%d, %d)", s.X, s.Y)
		}
	}
}

func BenchmarkLine(b *testing.B) {
	e := New(&sink.Discard{})
	l := line(0, 0, 255, 100)
	for i := 0; i < b.N; i++ {
		e.Draw(l)
	}
}
