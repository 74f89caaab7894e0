// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/xydoodle/shape"
)

// Doodle is a decoded doodle: an ordered shape list and the time it stays
// on screen.
type Doodle struct {
	Duration time.Duration
	Shapes   []shape.Shape
}

// Builder assembles a catalog image in memory.
type Builder struct {
	id      uuid.UUID
	records [][]byte
}

// NewBuilder returns an empty builder. A nil id is replaced by a random one.
func NewBuilder(id uuid.UUID) *Builder {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Builder{id: id}
}

// ID returns the build id stamped into the header.
func (b *Builder) ID() uuid.UUID {
	return b.id
}

// Len returns the number of doodles added.
func (b *Builder) Len() int {
	return len(b.records)
}

// Add encodes d as the next doodle record.
func (b *Builder) Add(d Doodle) error {
	if len(b.records) >= MaxDoodles {
		return fmt.Errorf("%w: more than %d doodles", ErrRange, MaxDoodles)
	}
	ms := d.Duration.Milliseconds()
	if ms < 0 || ms > math.MaxUint32 {
		return fmt.Errorf("%w: duration %v", ErrRange, d.Duration)
	}
	if len(d.Shapes) > math.MaxUint16 {
		return fmt.Errorf("%w: %d shapes in one doodle", ErrRange, len(d.Shapes))
	}

	var (
		body   []byte
		points int
		err    error
	)
	for i, s := range d.Shapes {
		if body, err = appendShape(body, s); err != nil {
			return fmt.Errorf("doodle %d shape %d: %w", len(b.records), i, err)
		}
		if p, ok := s.(*shape.Poly); ok {
			points += len(p.Points)
		}
	}
	if points > MaxPoints {
		return fmt.Errorf("%w: %d poly points in one doodle", ErrRange, points)
	}

	h := RecordHeader{
		DurationMS: uint32(ms),
		Shapes:     uint16(len(d.Shapes)),
		Points:     uint16(points),
		Size:       uint32(len(body)),
	}
	rec := h.append(make([]byte, 0, RecordSize+len(body)))
	b.records = append(b.records, append(rec, body...))
	return nil
}

// Bytes returns the catalog image.
func (b *Builder) Bytes() []byte {
	size := HeaderSize + 4*len(b.records)
	for _, r := range b.records {
		size += len(r)
	}
	out := make([]byte, 0, size)

	index := HeaderSize
	for _, r := range b.records {
		index += len(r)
	}

	out = append(out, Magic...)
	out = append(out, Version, 0)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(b.records)))
	out = append(out, b.id[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(index))
	out = binary.LittleEndian.AppendUint32(out, 0)

	offsets := make([]uint32, len(b.records))
	for i, r := range b.records {
		offsets[i] = uint32(len(out))
		out = append(out, r...)
	}
	for _, off := range offsets {
		out = binary.LittleEndian.AppendUint32(out, off)
	}
	return out
}

// WriteTo writes the catalog image to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}
