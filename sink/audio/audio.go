// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package audio plays samples as a stereo signal for an oscilloscope in XY
// mode: X drives the left channel and Y the right, both mapped onto the
// full [-1, 1] range. Output goes through PortAudio's blocking write API.
//
// A sound card has no intensity channel. Blanked moves are still written
// so the trace is continuous; scopes with a Z input should use a board sink.
package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/sink"
)

// DefaultSampleRate is used when no rate is configured.
const DefaultSampleRate = 48000

// DefaultFrames is the number of stereo frames per blocking write.
const DefaultFrames = 1024

// ErrClosed is returned by Close when the sink has already been closed.
var ErrClosed = errors.New("audio: sink closed")

// Level maps a device coordinate onto the signed unit range used by audio
// hardware: 0 maps to -1 and 255 to 1.
func Level(v uint8) float32 {
	return float32(v)/127.5 - 1
}

// Player is a Sink that writes XY samples to an audio stream.
//
// Player is not safe for concurrent use.
type Player struct {
	out   [][]float32 // left, right; shared with the stream
	n     int
	write func() error
	close func() error
	err   error
	done  bool
}

// Open initializes PortAudio and starts a stereo output stream on the
// default device.
func Open(rate float64, frames int) (*Player, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if frames <= 0 {
		frames = DefaultFrames
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize: %w", err)
	}
	out := [][]float32{make([]float32, frames), make([]float32, frames)}
	stream, err := portaudio.OpenDefaultStream(0, 2, rate, frames, &out)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audio: start stream: %w", err)
	}
	xydoodle.Logger().Info("audio: stream started",
		"rate", stream.Info().SampleRate, "frames", frames)

	p := newPlayer(out, stream.Write)
	p.close = func() error {
		return errors.Join(stream.Stop(), stream.Close(), portaudio.Terminate())
	}
	return p, nil
}

func newPlayer(out [][]float32, write func() error) *Player {
	return &Player{out: out, write: write, close: func() error { return nil }}
}

// Accept implements sink.Sink. Intensity is ignored.
func (p *Player) Accept(x, y, _ uint8) {
	if p.err != nil || p.done {
		return
	}
	p.out[0][p.n] = Level(x)
	p.out[1][p.n] = Level(y)
	p.n++
	if p.n == len(p.out[0]) {
		p.flush()
	}
}

// Disable implements sink.Sink. The beam position holds; see the package
// documentation.
func (p *Player) Disable() {}

func (p *Player) flush() {
	p.n = 0
	if err := p.write(); err != nil {
		p.err = fmt.Errorf("audio: write: %w", err)
		xydoodle.Logger().Warn("audio: write failed", "err", err)
	}
}

// Err returns the first write error.
func (p *Player) Err() error {
	return p.err
}

// Close pads and writes the pending buffer, then stops the stream.
func (p *Player) Close() error {
	if p.done {
		return ErrClosed
	}
	if p.n > 0 && p.err == nil {
		x, y := p.out[0][p.n-1], p.out[1][p.n-1]
		for i := p.n; i < len(p.out[0]); i++ {
			p.out[0][i], p.out[1][i] = x, y
		}
		p.flush()
	}
	p.done = true
	return errors.Join(p.err, p.close())
}

var _ sink.Sink = (*Player)(nil)

func init() {
	sink.Register("audio", func(o sink.Options) (sink.Sink, error) {
		return Open(o.SampleRate, DefaultFrames)
	})
}
