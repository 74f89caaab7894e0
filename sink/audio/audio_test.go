// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package audio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		v    uint8
		want float32
	}{
		{0, -1},
		{255, 1},
		{51, -0.6},
	}
	for _, tt := range tests {
		got := Level(tt.v)
		if d := got - tt.want; d < -1e-6 || d > 1e-6 {
			t.Errorf("Level(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if Level(127) >= 0 || Level(128) <= 0 {
		t.Errorf("Level(127), Level(128) = %v, %v; want opposite signs", Level(127), Level(128))
	}
}

type capture struct {
	out    [][]float32
	writes [][2][]float32
	fail   error
}

func newCapture(frames int) *capture {
	return &capture{out: [][]float32{make([]float32, frames), make([]float32, frames)}}
}

func (c *capture) write() error {
	if c.fail != nil {
		return c.fail
	}
	c.writes = append(c.writes, [2][]float32{
		append([]float32(nil), c.out[0]...),
		append([]float32(nil), c.out[1]...),
	})
	return nil
}

func TestWritesFullBuffers(t *testing.T) {
	c := newCapture(4)
	p := newPlayer(c.out, c.write)
	for i := range uint8(9) {
		p.Accept(i*25, 255-i*25, 0xFF)
		p.Disable()
	}
	if len(c.writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(c.writes))
	}
	want := []float32{Level(100), Level(125), Level(150), Level(175)}
	if diff := cmp.Diff(want, c.writes[1][0]); diff != "" {
		t.Errorf("second buffer, left (-want +got):\n%s", diff)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(c.writes) != 3 {
		t.Fatalf("writes after Close = %d, want 3", len(c.writes))
	}
	// The tail buffer holds the last position.
	last := Level(200)
	if diff := cmp.Diff([]float32{last, last, last, last}, c.writes[2][0]); diff != "" {
		t.Errorf("padded buffer, left (-want +got):\n%s", diff)
	}
	if !errors.Is(p.Close(), ErrClosed) {
		t.Error("second Close() did not return ErrClosed")
	}
}

func TestWriteErrorStops(t *testing.T) {
	c := newCapture(2)
	c.fail = errors.New("device gone")
	p := newPlayer(c.out, c.write)
	for range 10 {
		p.Accept(1, 2, 3)
	}
	if p.Err() == nil {
		t.Fatal("Err() = nil after a failed write")
	}
	if err := p.Close(); !errors.Is(err, c.fail) {
		t.Errorf("Close() = %v, want %v", err, c.fail)
	}
}
