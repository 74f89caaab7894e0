// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pdfsink records doodles as vector PDF pages, one page per doodle,
// using github.com/jung-kurt/gofpdf. Pages are 256pt squares so one device
// unit is one point.
//
// The sink registers itself as "pdf"; Options.Output names the file written
// on Close.
package pdfsink

import (
	"errors"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/sink"
)

const pageSize = 256

// Writer is a Sink that traces lit strokes onto PDF pages.
//
// Writer is not safe for concurrent use.
type Writer struct {
	pdf  *gofpdf.Fpdf
	path string

	width float64
	r     int
	g     int
	b     int

	drawing bool
	doodle  int
	lit     bool
	px, py  float64
}

// Option configures a Writer.
type Option func(*Writer)

// WithLineWidth sets the stroke width in points.
func WithLineWidth(w float64) Option {
	return func(wr *Writer) {
		if w > 0 {
			wr.width = w
		}
	}
}

// WithColor sets the stroke color.
func WithColor(r, g, b int) Option {
	return func(wr *Writer) {
		wr.r, wr.g, wr.b = r, g, b
	}
}

// New returns a Writer that saves to path on Close. An empty path keeps the
// document in memory for Output.
func New(path string, opts ...Option) *Writer {
	w := &Writer{path: path, width: 0.6, g: 160, drawing: true, doodle: -1}
	for _, o := range opts {
		o(w)
	}
	w.pdf = gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageSize, Ht: pageSize},
	})
	w.pdf.SetCreator("xydoodle", true)
	w.pdf.SetLineCapStyle("round")
	return w
}

func (w *Writer) page() {
	w.pdf.AddPage()
	w.pdf.SetDrawColor(w.r, w.g, w.b)
	w.pdf.SetFillColor(w.r, w.g, w.b)
	w.pdf.SetLineWidth(w.width)
	w.lit = false
}

// BeginFrame implements sink.Framer: a new doodle starts a new page and
// only the first pass of each doodle is recorded.
func (w *Writer) BeginFrame(doodle, pass int) {
	w.drawing = pass == 0
	if w.drawing && doodle != w.doodle {
		w.doodle = doodle
		w.page()
	}
}

// Accept implements sink.Sink.
func (w *Writer) Accept(x, y, z uint8) {
	if !w.drawing {
		return
	}
	if z == 0 {
		w.Disable()
		return
	}
	if w.pdf.PageNo() == 0 {
		w.page()
	}
	px, py := float64(x)+0.5, pageSize-0.5-float64(y)
	if w.lit {
		w.pdf.Line(w.px, w.py, px, py)
	} else {
		w.pdf.Circle(px, py, w.width/2, "F")
	}
	w.px, w.py, w.lit = px, py, true
}

// Disable implements sink.Sink.
func (w *Writer) Disable() {
	w.lit = false
}

// Pages returns the number of pages recorded.
func (w *Writer) Pages() int {
	return w.pdf.PageCount()
}

// Output writes the document to out. The Writer cannot be used afterwards.
func (w *Writer) Output(out io.Writer) error {
	if w.pdf.PageNo() == 0 {
		w.page()
	}
	return w.pdf.Output(out)
}

// Close writes the document to the path given to New.
func (w *Writer) Close() error {
	if w.path == "" {
		return w.pdf.Error()
	}
	if w.pdf.PageNo() == 0 {
		w.page()
	}
	if err := w.pdf.OutputFileAndClose(w.path); err != nil {
		return err
	}
	xydoodle.Logger().Info("pdf: written", "path", w.path, "pages", w.pdf.PageCount())
	return nil
}

var (
	_ sink.Sink   = (*Writer)(nil)
	_ sink.Framer = (*Writer)(nil)
)

func init() {
	sink.Register("pdf", func(o sink.Options) (sink.Sink, error) {
		if o.Output == "" {
			return nil, errors.New("pdf: output path required")
		}
		return New(o.Output), nil
	})
}
