// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shape

import "testing"

func TestKindWireTags(t *testing.T) {
	// The catalog format depends on these values.
	tests := []struct {
		kind Kind
		tag  uint8
		name string
	}{
		{KindArc, 0, "arc"},
		{KindRect, 1, "rect"},
		{KindCircle, 2, "circle"},
		{KindEllipse, 3, "ellipse"},
		{KindLine, 4, "line"},
		{KindPoly, 5, "poly"},
	}
	for _, tt := range tests {
		if uint8(tt.kind) != tt.tag {
			t.Errorf("%s tag = %d, want %d", tt.name, uint8(tt.kind), tt.tag)
		}
		if tt.kind.String() != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.tag, tt.kind.String(), tt.name)
		}
		if k, ok := ParseKind(tt.name); !ok || k != tt.kind {
			t.Errorf("ParseKind(%q) = %v, %v", tt.name, k, ok)
		}
	}
}

func TestKindValid(t *testing.T) {
	if !KindPoly.Valid() {
		t.Error("KindPoly should be valid")
	}
	if Kind(6).Valid() {
		t.Error("Kind(6) should be invalid")
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("Kind(200).String() = %q", got)
	}
	if _, ok := ParseKind("triangle"); ok {
		t.Error("ParseKind(triangle) should fail")
	}
}

func TestPolySegments(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	tests := []struct {
		name string
		poly Poly
		want int
	}{
		{"empty open", Poly{}, 0},
		{"empty closed", Poly{Closed: true}, 0},
		{"single open", Poly{Points: pts[:1]}, 0},
		{"single closed", Poly{Closed: true, Points: pts[:1]}, 1},
		{"triangle open", Poly{Points: pts}, 2},
		{"triangle closed", Poly{Closed: true, Points: pts}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Segments(); got != tt.want {
				t.Errorf("Segments() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShapeKinds(t *testing.T) {
	shapes := []Shape{&Arc{}, &Rect{}, &Circle{}, &Ellipse{}, &Line{}, &Poly{}}
	for i, s := range shapes {
		if s.Kind() != Kind(i) {
			t.Errorf("%T.Kind() = %v, want %v", s, s.Kind(), Kind(i))
		}
	}
}
