// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
)

// Layout of a catalog image. All integers are little-endian.
//
//	header   32 bytes  magic "XYDC", version, reserved, doodle count u16,
//	                   build id (16 bytes), index offset u32, reserved u32
//	records            one doodle record per doodle
//	index              doodle count × u32 record offsets
//
// A doodle record is a 12-byte header (duration ms u32, shape count u16,
// total poly point count u16, body size u32) followed by body size bytes of
// shape records. A shape record is tag u8, flags u8, payload size u16 and
// the payload.
const (
	Magic           = "XYDC"
	Version         = 1
	HeaderSize      = 32
	RecordSize      = 12
	ShapeRecordSize = 4
	MaxDoodles      = 0xFFFF
	MaxPoints       = 0xFFFF
	MaxPolyPoints   = (0xFFFF - 2) / 4
)

// flagClosed marks a closed poly.
const flagClosed uint8 = 1 << 0

const (
	offMagic   = 0
	offVersion = 4
	offCount   = 6
	offID      = 8
	offIndex   = 24
)

var (
	// ErrFormat reports data that is not a catalog image.
	ErrFormat = errors.New("catalog: invalid format")
	// ErrRange reports an index, size or offset outside its bounds.
	ErrRange = errors.New("catalog: out of range")
)

// payloadSizes holds the payload size of every fixed-size shape kind.
// Poly payloads are a u16 point count followed by four bytes per point.
var payloadSizes = [...]int{
	shape.KindArc:     12,
	shape.KindRect:    12,
	shape.KindCircle:  6,
	shape.KindEllipse: 8,
	shape.KindLine:    8,
}

// maxPayload is the largest fixed payload.
const maxPayload = 12

func payloadSize(k shape.Kind) (int, bool) {
	if int(k) >= len(payloadSizes) {
		return 0, false
	}
	return payloadSizes[k], true
}

func polyPayloadSize(n int) int {
	return 2 + 4*n
}

// RecordHeader is the fixed part of a doodle record.
type RecordHeader struct {
	// DurationMS is the time the doodle stays on screen.
	DurationMS uint32
	// Shapes is the number of shape records in the body.
	Shapes uint16
	// Points is the total number of poly points in the body.
	Points uint16
	// Size is the body size in bytes.
	Size uint32
}

func (h RecordHeader) append(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.DurationMS)
	b = binary.LittleEndian.AppendUint16(b, h.Shapes)
	b = binary.LittleEndian.AppendUint16(b, h.Points)
	return binary.LittleEndian.AppendUint32(b, h.Size)
}

func parseRecordHeader(b []byte) RecordHeader {
	return RecordHeader{
		DurationMS: binary.LittleEndian.Uint32(b[0:]),
		Shapes:     binary.LittleEndian.Uint16(b[4:]),
		Points:     binary.LittleEndian.Uint16(b[6:]),
		Size:       binary.LittleEndian.Uint32(b[8:]),
	}
}

// appendShape encodes s as a shape record.
func appendShape(b []byte, s shape.Shape) ([]byte, error) {
	if isNil(s) {
		return b, fmt.Errorf("%w: nil %T", ErrFormat, s)
	}
	u16 := func(v fixed.Uint8_8) { b = binary.LittleEndian.AppendUint16(b, uint16(v)) }
	i16 := func(v fixed.Int8_8) { b = binary.LittleEndian.AppendUint16(b, uint16(v)) }
	head := func(k shape.Kind, flags uint8, size int) {
		b = append(b, uint8(k), flags)
		b = binary.LittleEndian.AppendUint16(b, uint16(size))
	}

	switch s := s.(type) {
	case *shape.Arc:
		head(shape.KindArc, 0, payloadSizes[shape.KindArc])
		u16(s.CX)
		u16(s.CY)
		u16(s.RX)
		u16(s.RY)
		i16(s.T0)
		i16(s.T1)
	case *shape.Rect:
		head(shape.KindRect, 0, payloadSizes[shape.KindRect])
		u16(s.X)
		u16(s.Y)
		u16(s.Width)
		u16(s.Height)
		u16(s.RX)
		u16(s.RY)
	case *shape.Circle:
		head(shape.KindCircle, 0, payloadSizes[shape.KindCircle])
		u16(s.CX)
		u16(s.CY)
		u16(s.R)
	case *shape.Ellipse:
		head(shape.KindEllipse, 0, payloadSizes[shape.KindEllipse])
		u16(s.CX)
		u16(s.CY)
		u16(s.RX)
		u16(s.RY)
	case *shape.Line:
		head(shape.KindLine, 0, payloadSizes[shape.KindLine])
		u16(s.X1)
		u16(s.Y1)
		u16(s.X2)
		u16(s.Y2)
	case *shape.Poly:
		n := len(s.Points)
		if n > MaxPolyPoints {
			return b, fmt.Errorf("%w: poly has %d points, limit %d", ErrRange, n, MaxPolyPoints)
		}
		var flags uint8
		if s.Closed {
			flags |= flagClosed
		}
		head(shape.KindPoly, flags, polyPayloadSize(n))
		b = binary.LittleEndian.AppendUint16(b, uint16(n))
		for _, p := range s.Points {
			u16(p.X)
			u16(p.Y)
		}
	default:
		return b, fmt.Errorf("%w: cannot encode shape %T", ErrFormat, s)
	}
	return b, nil
}

// isNil reports whether s is a nil interface or a nil variant pointer.
func isNil(s shape.Shape) bool {
	switch s := s.(type) {
	case nil:
		return true
	case *shape.Arc:
		return s == nil
	case *shape.Rect:
		return s == nil
	case *shape.Circle:
		return s == nil
	case *shape.Ellipse:
		return s == nil
	case *shape.Line:
		return s == nil
	case *shape.Poly:
		return s == nil
	}
	return false
}

// decodeFixed decodes the payload of a fixed-size kind into the frame. The
// payload length has been checked against payloadSizes.
func (f *Frame) decodeFixed(k shape.Kind, p []byte) shape.Shape {
	u := func(i int) fixed.Uint8_8 { return fixedAt(p, 2*i) }
	s := func(i int) fixed.Int8_8 { return fixed.Int8_8(binary.LittleEndian.Uint16(p[2*i:])) }

	switch k {
	case shape.KindArc:
		return push(&f.arcs, shape.Arc{CX: u(0), CY: u(1), RX: u(2), RY: u(3), T0: s(4), T1: s(5)})
	case shape.KindRect:
		return push(&f.rects, shape.Rect{X: u(0), Y: u(1), Width: u(2), Height: u(3), RX: u(4), RY: u(5)})
	case shape.KindCircle:
		return push(&f.circles, shape.Circle{CX: u(0), CY: u(1), R: u(2)})
	case shape.KindEllipse:
		return push(&f.ellipses, shape.Ellipse{CX: u(0), CY: u(1), RX: u(2), RY: u(3)})
	case shape.KindLine:
		return push(&f.lines, shape.Line{X1: u(0), Y1: u(1), X2: u(2), Y2: u(3)})
	}
	return nil
}

func fixedAt(b []byte, i int) fixed.Uint8_8 {
	return fixed.Uint8_8(binary.LittleEndian.Uint16(b[i:]))
}
