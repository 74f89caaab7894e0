// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/binary"
	"time"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/shape"
)

// Frame holds one staged doodle. Its shapes point into per-kind arenas that
// are truncated, not freed, when the next doodle is staged, so a Frame grows
// to the largest doodle it has held and then stops allocating. Each arena is
// reserved for the number of records of its kind before any is decoded.
//
// The contents of a Frame are valid until the next call to Stage.
type Frame struct {
	Duration time.Duration
	Shapes   []shape.Shape
	// Skipped counts shape records that were not staged because their tag
	// or size was invalid.
	Skipped int

	pointCap int
	arcs     []shape.Arc
	rects    []shape.Rect
	circles  []shape.Circle
	ellipses []shape.Ellipse
	lines    []shape.Line
	polys    []shape.Poly
	points   []shape.Point
}

// Footprint is the number of slots a Frame has reserved.
type Footprint struct {
	// Shapes counts shape slots over the shape list and every kind arena.
	Shapes int
	// Points counts poly point slots.
	Points int
}

// Footprint reports the capacity the frame currently holds.
func (f *Frame) Footprint() Footprint {
	return Footprint{
		Shapes: cap(f.Shapes) + cap(f.arcs) + cap(f.rects) + cap(f.circles) +
			cap(f.ellipses) + cap(f.lines) + cap(f.polys),
		Points: cap(f.points),
	}
}

// kinds is the number of shape kinds, indexed by shape.Kind.
const kinds = int(shape.KindPoly) + 1

// reset empties the frame and reserves room for shapes shapes, points poly
// points and n[k] shapes of kind k.
func (f *Frame) reset(shapes, points int, n *[kinds]int) {
	f.Duration = 0
	f.Skipped = 0
	f.pointCap = points
	f.Shapes = reuse(f.Shapes, shapes)
	f.points = reuse(f.points, points)
	f.arcs = reuse(f.arcs, n[shape.KindArc])
	f.rects = reuse(f.rects, n[shape.KindRect])
	f.circles = reuse(f.circles, n[shape.KindCircle])
	f.ellipses = reuse(f.ellipses, n[shape.KindEllipse])
	f.lines = reuse(f.lines, n[shape.KindLine])
	f.polys = reuse(f.polys, n[shape.KindPoly])
}

func reuse[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, 0, n)
	}
	return s[:0]
}

// push appends v to the arena and returns its address. reset reserved the
// arena for every record of its kind, so the append never moves earlier
// elements.
func push[T any](arena *[]T, v T) *T {
	*arena = append(*arena, v)
	return &(*arena)[len(*arena)-1]
}

// skipError is the reason a shape record was skipped.
type skipError string

func (e skipError) Error() string { return string(e) }

// Loader stages doodles from a catalog into its Frame.
//
// Loader is not safe for concurrent use.
type Loader struct {
	cat     *Catalog
	frame   Frame
	scratch [256]byte
}

// NewLoader returns a loader with an empty frame.
func NewLoader(c *Catalog) *Loader {
	return &Loader{cat: c}
}

// Frame returns the loader's frame.
func (l *Loader) Frame() *Frame {
	return &l.frame
}

// Stage copies doodle i into the frame and returns it. Shape records with an
// unknown tag or a payload size that does not match their kind are skipped
// by their declared size; no read leaves the doodle's body. An error means
// the doodle record itself is unreadable.
func (l *Loader) Stage(i int) (*Frame, error) {
	h, pos, err := l.cat.header(i)
	if err != nil {
		return nil, err
	}
	end := pos + int64(h.Size)
	var counts [kinds]int
	if err := l.census(&counts, pos, end, int(h.Shapes)); err != nil {
		return nil, err
	}
	f := &l.frame
	f.reset(int(h.Shapes), int(h.Points), &counts)
	f.Duration = time.Duration(h.DurationMS) * time.Millisecond

	for range int(h.Shapes) {
		if pos+ShapeRecordSize > end {
			l.skip(i, pos, skipError("record header past end of body"))
			break
		}
		rec := l.scratch[:ShapeRecordSize]
		if _, err := l.cat.r.ReadAt(rec, pos); err != nil {
			return nil, err
		}
		kind, flags := shape.Kind(rec[0]), rec[1]
		size := int(binary.LittleEndian.Uint16(rec[2:]))
		payload := pos + ShapeRecordSize
		next := payload + int64(size)
		if next > end {
			l.skip(i, pos, skipError("payload past end of body"))
			break
		}

		s, err := l.stageShape(kind, flags, payload, size)
		switch err.(type) {
		case nil:
			f.Shapes = append(f.Shapes, s)
		case skipError:
			l.skip(i, pos, err)
		default:
			return nil, err
		}
		pos = next
	}

	xydoodle.Logger().Debug("catalog: staged",
		"doodle", i, "shapes", len(f.Shapes), "points", len(f.points), "skipped", f.Skipped)
	return f, nil
}

// census counts the records of each kind among the first n shape records
// of the body [pos, end). Only record headers are read.
func (l *Loader) census(counts *[kinds]int, pos, end int64, n int) error {
	rec := l.scratch[:ShapeRecordSize]
	for range n {
		if pos+ShapeRecordSize > end {
			break
		}
		if _, err := l.cat.r.ReadAt(rec, pos); err != nil {
			return err
		}
		if k := shape.Kind(rec[0]); k.Valid() {
			counts[k]++
		}
		pos += ShapeRecordSize + int64(binary.LittleEndian.Uint16(rec[2:]))
	}
	return nil
}

func (l *Loader) skip(doodle int, off int64, reason error) {
	l.frame.Skipped++
	xydoodle.Logger().Debug("catalog: shape skipped", "doodle", doodle, "offset", off, "reason", reason)
}

func (l *Loader) stageShape(k shape.Kind, flags uint8, off int64, size int) (shape.Shape, error) {
	if k == shape.KindPoly {
		return l.stagePoly(flags, off, size)
	}
	want, ok := payloadSize(k)
	if !ok {
		return nil, skipError("unknown tag " + k.String())
	}
	if size != want {
		return nil, skipError("payload size does not match " + k.String())
	}
	p := l.scratch[:size]
	if _, err := l.cat.r.ReadAt(p, off); err != nil {
		return nil, err
	}
	return l.frame.decodeFixed(k, p), nil
}

func (l *Loader) stagePoly(flags uint8, off int64, size int) (shape.Shape, error) {
	f := &l.frame
	if size < 2 {
		return nil, skipError("poly payload too short")
	}
	b := l.scratch[:2]
	if _, err := l.cat.r.ReadAt(b, off); err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint16(b))
	if size != polyPayloadSize(n) {
		return nil, skipError("poly payload size does not match its point count")
	}
	start := len(f.points)
	if start+n > f.pointCap {
		return nil, skipError("poly points exceed the doodle's point count")
	}

	off += 2
	for left := n; left > 0; {
		chunk := min(left, len(l.scratch)/4)
		b := l.scratch[:4*chunk]
		if _, err := l.cat.r.ReadAt(b, off); err != nil {
			f.points = f.points[:start]
			return nil, err
		}
		for j := range chunk {
			f.points = append(f.points, shape.Point{
				X: fixedAt(b, 4*j),
				Y: fixedAt(b, 4*j+2),
			})
		}
		off += int64(len(b))
		left -= chunk
	}

	end := len(f.points)
	p := shape.Poly{Closed: flags&flagClosed != 0, Points: f.points[start:end:end]}
	return push(&f.polys, p), nil
}
