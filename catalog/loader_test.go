// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/xydoodle/fixed"
	"github.com/gogpu/xydoodle/shape"
)

// rawImage assembles a catalog image from pre-encoded doodle records.
func rawImage(records ...[]byte) []byte {
	index := HeaderSize
	for _, r := range records {
		index += len(r)
	}
	img := append([]byte(Magic), Version, 0)
	img = binary.LittleEndian.AppendUint16(img, uint16(len(records)))
	img = append(img, testID[:]...)
	img = binary.LittleEndian.AppendUint32(img, uint32(index))
	img = binary.LittleEndian.AppendUint32(img, 0)
	var offsets []uint32
	for _, r := range records {
		offsets = append(offsets, uint32(len(img)))
		img = append(img, r...)
	}
	for _, off := range offsets {
		img = binary.LittleEndian.AppendUint32(img, off)
	}
	return img
}

func rawRecord(shapes, points uint16, body ...[]byte) []byte {
	b := bytes.Join(body, nil)
	h := RecordHeader{DurationMS: 100, Shapes: shapes, Points: points, Size: uint32(len(b))}
	return append(h.append(nil), b...)
}

func shapeRec(tag, flags uint8, payload []byte) []byte {
	b := []byte{tag, flags}
	b = binary.LittleEndian.AppendUint16(b, uint16(len(payload)))
	return append(b, payload...)
}

func encode(t *testing.T, s shape.Shape) []byte {
	t.Helper()
	b, err := appendShape(nil, s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func stage(t *testing.T, img []byte, i int) *Frame {
	t.Helper()
	c, err := FromBytes(img)
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	f, err := NewLoader(c).Stage(i)
	if err != nil {
		t.Fatalf("Stage(%d) error = %v", i, err)
	}
	return f
}

func TestStageSkipsInvalidRecords(t *testing.T) {
	first, last := line(0, 0, 10, 0), line(5, 5, 6, 6)
	polyCount := func(n uint16, extra int) []byte {
		p := binary.LittleEndian.AppendUint16(nil, n)
		return append(p, make([]byte, extra)...)
	}
	tests := []struct {
		name    string
		bad     []byte
		points  uint16
		skipped int
	}{
		{"unknown tag", shapeRec(9, 0, make([]byte, 6)), 0, 1},
		{"unknown tag, empty payload", shapeRec(200, 0, nil), 0, 1},
		{"short line", shapeRec(uint8(shape.KindLine), 0, make([]byte, 6)), 0, 1},
		{"long arc", shapeRec(uint8(shape.KindArc), 0, make([]byte, 14)), 0, 1},
		{"poly without count", shapeRec(uint8(shape.KindPoly), 0, []byte{1}), 0, 1},
		{"poly count mismatch", shapeRec(uint8(shape.KindPoly), 0, polyCount(3, 8)), 3, 1},
		{"poly over point budget", encode(t, poly(false, 1, 1, 2, 2, 3, 3)), 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := rawImage(rawRecord(3, tt.points, encode(t, first), tt.bad, encode(t, last)))
			f := stage(t, img, 0)
			if f.Skipped != tt.skipped {
				t.Errorf("Skipped = %d, want %d", f.Skipped, tt.skipped)
			}
			want := []shape.Shape{first, last}
			if diff := cmp.Diff(want, f.Shapes); diff != "" {
				t.Errorf("shapes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStageStopsAtBodyEnd(t *testing.T) {
	first := line(0, 0, 10, 0)

	// The second record claims more payload than the body holds.
	overrun := shapeRec(uint8(shape.KindLine), 0, make([]byte, 8))
	binary.LittleEndian.PutUint16(overrun[2:], 200)
	f := stage(t, rawImage(rawRecord(3, 0, encode(t, first), overrun)), 0)
	if len(f.Shapes) != 1 || f.Skipped != 1 {
		t.Errorf("payload overrun: %d shapes, %d skipped, want 1 and 1", len(f.Shapes), f.Skipped)
	}

	// The body ends inside a record header.
	f = stage(t, rawImage(rawRecord(2, 0, encode(t, first), []byte{4, 0})), 0)
	if len(f.Shapes) != 1 || f.Skipped != 1 {
		t.Errorf("truncated record: %d shapes, %d skipped, want 1 and 1", len(f.Shapes), f.Skipped)
	}
}

func TestStageHonorsShapeCount(t *testing.T) {
	img := rawImage(rawRecord(2, 0,
		encode(t, line(0, 0, 1, 1)),
		encode(t, line(0, 0, 2, 2)),
		encode(t, line(0, 0, 3, 3)),
	))
	f := stage(t, img, 0)
	if len(f.Shapes) != 2 || f.Skipped != 0 {
		t.Errorf("%d shapes, %d skipped, want 2 and 0", len(f.Shapes), f.Skipped)
	}
}

// trackingReader records the byte ranges read from it.
type trackingReader struct {
	data  []byte
	reads [][2]int64
}

func (r *trackingReader) ReadAt(p []byte, off int64) (int, error) {
	r.reads = append(r.reads, [2]int64{off, off + int64(len(p))})
	return bytes.NewReader(r.data).ReadAt(p, off)
}

func TestStageReadsStayInRecord(t *testing.T) {
	// Every invalid record kind sits in the middle doodle; its neighbours
	// hold data a stray read would pick up.
	neighbour := rawRecord(1, 0, encode(t, line(9, 9, 9, 9)))
	overrun := shapeRec(uint8(shape.KindPoly), 0, polyCount16(40))
	middle := rawRecord(4, 1,
		shapeRec(17, 0, make([]byte, 10)),
		shapeRec(uint8(shape.KindCircle), 0, make([]byte, 4)),
		encode(t, poly(false, 1, 1)),
		overrun,
	)
	img := rawImage(neighbour, middle, neighbour)

	r := &trackingReader{data: img}
	c, err := New(r, int64(len(img)))
	if err != nil {
		t.Fatal(err)
	}
	start := int64(HeaderSize + len(neighbour))
	end := start + int64(len(middle))
	index := int64(HeaderSize + 2*len(neighbour) + len(middle))

	r.reads = nil
	f, err := NewLoader(c).Stage(1)
	if err != nil {
		t.Fatalf("Stage(1) error = %v", err)
	}
	if len(f.Shapes) != 1 || f.Skipped != 3 {
		t.Errorf("%d shapes, %d skipped, want 1 and 3", len(f.Shapes), f.Skipped)
	}
	for _, rd := range r.reads {
		inIndex := rd[0] >= index && rd[1] <= index+12
		inRecord := rd[0] >= start && rd[1] <= end
		if !inIndex && !inRecord {
			t.Errorf("read [%d, %d) outside record [%d, %d)", rd[0], rd[1], start, end)
		}
	}
}

// polyCount16 is a poly payload whose count fits but whose points are
// missing.
func polyCount16(n uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, n)
}

func small() Doodle {
	return Doodle{
		Duration: time.Second,
		Shapes: []shape.Shape{
			line(0, 0, 10, 10),
			poly(true, 0, 0, 5, 0, 5, 5, 0, 5),
			&shape.Arc{CX: fixed.U(100), CY: fixed.U(100), RX: fixed.U(10), RY: fixed.U(10), T1: fixed.One},
		},
	}
}

func big() Doodle {
	d := Doodle{Duration: time.Second}
	for i := range 50 {
		d.Shapes = append(d.Shapes, line(uint8(i), 0, uint8(i), 200))
	}
	p := &shape.Poly{}
	for i := range 100 {
		p.Points = append(p.Points, shape.Pt(uint8(i), uint8(2*i)))
	}
	d.Shapes = append(d.Shapes, p)
	return d
}

func TestFootprintIndependentOfCatalogSize(t *testing.T) {
	alone := build(t, small())

	crowd := []Doodle{small()}
	for range 300 {
		crowd = append(crowd, big())
	}
	large := build(t, crowd...)
	if large.Size() < 100*alone.Size() {
		t.Fatalf("large catalog is only %d bytes", large.Size())
	}

	a, err := NewLoader(alone).Stage(0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewLoader(large).Stage(0)
	if err != nil {
		t.Fatal(err)
	}

	const k, p = 3, 4
	if a.Footprint() != b.Footprint() {
		t.Errorf("footprint %+v in a 1-doodle catalog, %+v in a %d-doodle catalog",
			a.Footprint(), b.Footprint(), large.Len())
	}
	fp := b.Footprint()
	if fp.Points != p {
		t.Errorf("Points = %d, want %d", fp.Points, p)
	}
	// The shape list plus one arena slot per shape.
	if fp.Shapes != 2*k {
		t.Errorf("Shapes = %d, want %d", fp.Shapes, 2*k)
	}
}

func TestFootprintOfMixedDoodle(t *testing.T) {
	d := allKinds()
	f, err := NewLoader(build(t, d)).Stage(0)
	if err != nil {
		t.Fatal(err)
	}
	k := len(d.Shapes)
	want := Footprint{Shapes: 2 * k, Points: 5}
	if got := f.Footprint(); got != want {
		t.Errorf("Footprint() = %+v, want %+v", got, want)
	}
	if diff := cmp.Diff(d.Shapes, f.Shapes, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("staged shapes (-want +got):\n%s", diff)
	}
}

func TestFrameIsReused(t *testing.T) {
	c := build(t, big(), small())
	l := NewLoader(c)

	if _, err := l.Stage(0); err != nil {
		t.Fatal(err)
	}
	f, err := l.Stage(1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(small().Shapes, f.Shapes); diff != "" {
		t.Errorf("small doodle after big (-want +got):\n%s", diff)
	}
	if f.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", f.Duration)
	}

	// Both doodles have now been staged once; the arenas hold their union.
	peak := l.Frame().Footprint()

	for i := range 4 {
		if _, err := l.Stage(i % 2); err != nil {
			t.Fatal(err)
		}
		if got := l.Frame().Footprint(); got != peak {
			t.Fatalf("footprint grew to %+v after restaging, peak was %+v", got, peak)
		}
	}
}

func BenchmarkStage(b *testing.B) {
	bld := NewBuilder(testID)
	if err := bld.Add(big()); err != nil {
		b.Fatal(err)
	}
	c, err := FromBytes(bld.Bytes())
	if err != nil {
		b.Fatal(err)
	}
	l := NewLoader(c)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := l.Stage(0); err != nil {
			b.Fatal(err)
		}
	}
}
