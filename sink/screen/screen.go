// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package screen shows the beam in a desktop window, emulating a scope
// tube: every sample lights a pixel, and lit pixels fade a little on each
// display tick. The window is driven by Ebitengine, which must own the main
// goroutine; Scope therefore implements sink.MainLooper.
package screen

import (
	"errors"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/sink"
)

const size = 256

// DefaultPersistence is the share of brightness a pixel keeps per tick.
const DefaultPersistence = 0.75

// Scope is a Sink that renders into a window.
type Scope struct {
	scale int
	fade  uint16 // persistence in 1/256 units
	tint  color.RGBA

	mu   sync.Mutex
	glow []uint8 // row-major, top row first
	done bool
	err  error

	pix    []byte
	window *ebiten.Image
}

// Option configures a Scope.
type Option func(*Scope)

// WithScale sets the window zoom factor.
func WithScale(k int) Option {
	return func(s *Scope) {
		if k > 0 {
			s.scale = k
		}
	}
}

// WithPersistence sets the share of brightness kept per tick, in [0, 1).
func WithPersistence(p float64) Option {
	return func(s *Scope) {
		if p >= 0 && p < 1 {
			s.fade = uint16(p * 256)
		}
	}
}

// New returns a Scope. The window opens in Loop.
func New(opts ...Option) *Scope {
	s := &Scope{
		scale: 2,
		fade:  uint16(DefaultPersistence * 256),
		tint:  color.RGBA{0x33, 0xFF, 0x66, 0xFF},
		glow:  make([]uint8, size*size),
		pix:   make([]byte, size*size*4),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Accept implements sink.Sink.
func (s *Scope) Accept(x, y, z uint8) {
	i := int(size-1-y)*size + int(x)
	s.mu.Lock()
	s.glow[i] = max(s.glow[i], z)
	s.mu.Unlock()
}

// Disable implements sink.Sink. The beam is drawn only where it samples,
// so blanking needs no state.
func (s *Scope) Disable() {}

// decay fades every pixel by the persistence factor.
func (s *Scope) decay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.glow {
		if g != 0 {
			s.glow[i] = uint8(uint16(g) * s.fade >> 8)
		}
	}
}

// render converts the glow buffer into RGBA pixels.
func (s *Scope) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.glow {
		p := s.pix[i*4 : i*4+4 : i*4+4]
		p[0] = uint8(uint16(s.tint.R) * uint16(g) / 0xFF)
		p[1] = uint8(uint16(s.tint.G) * uint16(g) / 0xFF)
		p[2] = uint8(uint16(s.tint.B) * uint16(g) / 0xFF)
		p[3] = 0xFF
	}
}

func (s *Scope) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.done, s.err = true, err
	}
}

func (s *Scope) finished() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done, s.err
}

// Update implements ebiten.Game.
func (s *Scope) Update() error {
	if ebiten.IsWindowBeingClosed() {
		s.finish(nil)
		return ebiten.Termination
	}
	if done, _ := s.finished(); done {
		return ebiten.Termination
	}
	s.decay()
	return nil
}

// Draw implements ebiten.Game.
func (s *Scope) Draw(screen *ebiten.Image) {
	if s.window == nil {
		s.window = ebiten.NewImage(size, size)
	}
	s.render()
	s.window.WritePixels(s.pix)
	screen.DrawImage(s.window, nil)
}

// Layout implements ebiten.Game.
func (s *Scope) Layout(_, _ int) (int, int) {
	return size, size
}

// Loop implements sink.MainLooper. It runs play on a new goroutine and
// the window on the calling one, returning when play finishes or the
// window is closed. A closed window does not stop play; callers cancel it.
func (s *Scope) Loop(play func() error) error {
	ebiten.SetWindowSize(size*s.scale, size*s.scale)
	ebiten.SetWindowTitle("xydoodle")
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() { s.finish(play()) }()

	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	_, err := s.finished()
	xydoodle.Logger().Debug("screen: window closed")
	return err
}

var (
	_ sink.Sink       = (*Scope)(nil)
	_ sink.MainLooper = (*Scope)(nil)
	_ ebiten.Game     = (*Scope)(nil)
)

func init() {
	sink.Register("screen", func(o sink.Options) (sink.Sink, error) {
		return New(WithScale(o.Scale)), nil
	})
}
