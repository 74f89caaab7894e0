// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package phosphor renders beam samples into an image, the way a slow
// phosphor screen would show one redraw pass of a doodle.
//
// Consecutive lit samples are joined by a beam segment of fixed width and
// rasterized with golang.org/x/image/vector. Device Y grows upward, so the
// image is flipped vertically. Snapshots are written as PNG, or as BMP when
// the output path ends in ".bmp".
//
// The sink registers itself as "phosphor":
//
//	import _ "github.com/gogpu/xydoodle/sink/phosphor"
package phosphor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/vector"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/sink"
)

// Green is the color of a P1 phosphor.
var Green = color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF}

const deviceSize = 256

// Screen is a Sink that draws samples into an RGBA image.
//
// Screen is not safe for concurrent use.
type Screen struct {
	scale  int
	beam   float32
	color  color.Color
	output string

	img    *image.RGBA
	z      *vector.Rasterizer
	inked  bool
	lit    bool
	px, py float32

	drawing bool
	doodle  int
}

// Option configures a Screen.
type Option func(*Screen)

// WithScale sets the number of image pixels per device unit. Values below
// one are ignored.
func WithScale(n int) Option {
	return func(s *Screen) {
		if n >= 1 {
			s.scale = n
		}
	}
}

// WithBeam sets the beam width in device units.
func WithBeam(w float32) Option {
	return func(s *Screen) {
		if w > 0 {
			s.beam = w
		}
	}
}

// WithColor sets the phosphor color.
func WithColor(c color.Color) Option {
	return func(s *Screen) {
		s.color = c
	}
}

// WithOutput makes the screen write a snapshot per doodle. A path holding a
// printf verb, such as "doodle-%03d.png", is formatted with the doodle
// index; any other path is overwritten by each doodle in turn.
func WithOutput(path string) Option {
	return func(s *Screen) {
		s.output = path
	}
}

// New returns a blank screen.
func New(opts ...Option) *Screen {
	s := &Screen{scale: 2, beam: 1, color: Green, drawing: true, doodle: -1}
	for _, o := range opts {
		o(s)
	}
	n := deviceSize * s.scale
	s.img = image.NewRGBA(image.Rect(0, 0, n, n))
	s.z = vector.NewRasterizer(n, n)
	s.Clear()
	return s
}

// Clear blanks the screen.
func (s *Screen) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Black, image.Point{}, draw.Src)
	s.z.Reset(s.img.Rect.Dx(), s.img.Rect.Dy())
	s.inked = false
	s.lit = false
}

func (s *Screen) point(x, y uint8) (float32, float32) {
	k := float32(s.scale)
	return (float32(x) + 0.5) * k, (deviceSize - 0.5 - float32(y)) * k
}

// Accept implements sink.Sink.
func (s *Screen) Accept(x, y, z uint8) {
	if !s.drawing {
		return
	}
	if z == 0 {
		s.Disable()
		return
	}
	px, py := s.point(x, y)
	if s.lit {
		s.segment(s.px, s.py, px, py)
	} else {
		s.segment(px, py, px, py)
	}
	s.px, s.py, s.lit = px, py, true
}

// segment adds a quad of beam width from a to b, or a square dot when the
// two coincide.
func (s *Screen) segment(ax, ay, bx, by float32) {
	h := s.beam * float32(s.scale) / 2
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	var nx, ny, tx, ty float32
	if l == 0 {
		nx, ny, tx, ty = 0, h, h, 0
	} else {
		nx, ny = -dy/l*h, dx/l*h
		tx, ty = dx/l*h, dy/l*h
	}
	s.z.MoveTo(ax-tx+nx, ay-ty+ny)
	s.z.LineTo(bx+tx+nx, by+ty+ny)
	s.z.LineTo(bx+tx-nx, by+ty-ny)
	s.z.LineTo(ax-tx-nx, ay-ty-ny)
	s.z.ClosePath()
	s.inked = true
}

// Disable implements sink.Sink. The stroke drawn since the last Disable is
// composited onto the image.
func (s *Screen) Disable() {
	s.lit = false
	s.flush()
}

func (s *Screen) flush() {
	if !s.inked {
		return
	}
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(s.color), image.Point{})
	s.z.Reset(s.img.Rect.Dx(), s.img.Rect.Dy())
	s.inked = false
}

// BeginFrame implements sink.Framer. Only the first pass of a doodle is
// drawn; later passes retrace the same samples. Starting a new doodle
// writes the previous one out and clears the screen.
func (s *Screen) BeginFrame(doodle, pass int) {
	s.drawing = pass == 0
	if !s.drawing || doodle == s.doodle {
		return
	}
	if err := s.snapshot(); err != nil {
		xydoodle.Logger().Warn("phosphor: snapshot failed", "doodle", s.doodle, "err", err)
	}
	s.Clear()
	s.doodle = doodle
}

// Image returns the screen contents, including any stroke still in
// progress.
func (s *Screen) Image() *image.RGBA {
	s.flush()
	return s.img
}

// Encode writes the screen contents to w as PNG, or as BMP if format is
// "bmp".
func (s *Screen) Encode(w io.Writer, format string) error {
	if strings.EqualFold(format, "bmp") {
		return bmp.Encode(w, s.Image())
	}
	return png.Encode(w, s.Image())
}

func (s *Screen) snapshot() error {
	if s.output == "" || s.doodle < 0 {
		return nil
	}
	path := s.output
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, s.doodle)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if err := s.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}
	xydoodle.Logger().Debug("phosphor: snapshot written", "doodle", s.doodle, "path", path)
	return f.Close()
}

// Close writes the snapshot of the doodle on screen.
func (s *Screen) Close() error {
	if s.doodle < 0 && s.output != "" {
		s.doodle = 0
	}
	return s.snapshot()
}

var (
	_ sink.Sink   = (*Screen)(nil)
	_ sink.Framer = (*Screen)(nil)
)

func init() {
	sink.Register("phosphor", func(o sink.Options) (sink.Sink, error) {
		return New(WithScale(o.Scale), WithOutput(o.Output)), nil
	})
}
