// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sink defines the Pixel Sink boundary between the rasterization
// engine and the physical output path.
//
// A Sink receives (x, y, intensity) samples. Each Accept sets all three
// channels together; implementations must not expose a state where only
// some of the channels have changed. Disable blanks the beam so that
// movement between shapes leaves no trace.
//
// Host implementations live in sub-packages and register themselves by name,
// following the database/sql driver pattern:
//
//	import _ "github.com/gogpu/xydoodle/sink/phosphor"
//
//	s, err := sink.New("phosphor", sink.Options{Output: "frame.png"})
package sink

// Full is the intensity of a visible sample.
const Full uint8 = 0xFF

// Sink consumes rasterized samples.
type Sink interface {
	// Accept moves the beam to (x, y) at intensity z.
	Accept(x, y, z uint8)

	// Disable zeroes the intensity channel.
	Disable()
}

// Framer is implemented by sinks that want to know when the player starts
// a redraw pass. pass counts from zero for every doodle.
type Framer interface {
	BeginFrame(doodle, pass int)
}

// MainLooper is implemented by sinks that must own the main goroutine,
// such as windowed viewers. Loop runs play on another goroutine and
// returns when either finishes.
type MainLooper interface {
	Loop(play func() error) error
}

// Discard is a Sink that drops every sample and counts them.
type Discard struct {
	Samples  uint64
	Disables uint64
}

// Accept counts the sample.
func (d *Discard) Accept(_, _, _ uint8) { d.Samples++ }

// Disable counts the blanking request.
func (d *Discard) Disable() { d.Disables++ }
