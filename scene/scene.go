// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene compiles authored scenes into doodle catalogs.
//
// A scene is a TOML file listing frames. Each frame has a duration in
// seconds and uses doodles from a library by name; a use may move and scale
// the doodle. Library doodles are TOML files named <name>.toml holding a
// list of shapes in device coordinates.
//
//	# scene.toml
//	[[frames]]
//	duration = 2.5
//
//	[[frames.doodles]]
//	name  = "star"
//	scale = 0.5
//	x_off = 40
//
//	# doodles/star.toml
//	[[shapes]]
//	kind    = "poly"
//	polygon = true
//	points  = [[128, 200], [150, 140], [210, 140], [160, 100], [180, 40]]
//
// Every frame becomes one doodle in the catalog, holding the shapes of all
// the doodles it uses in order.
package scene

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/catalog"
	"github.com/gogpu/xydoodle/shape"
)

var (
	// ErrRange reports a value that does not fit the fixed-point format.
	ErrRange = errors.New("scene: value out of range")
	// ErrSyntax reports a scene or doodle that is well-formed TOML but
	// not a valid description.
	ErrSyntax = errors.New("scene: invalid description")
)

// Scene is a parsed scene file.
type Scene struct {
	Frames []Frame `toml:"frames"`
}

// Frame is one catalog entry: the doodles shown together and for how long.
type Frame struct {
	// Duration is in seconds.
	Duration float64 `toml:"duration"`
	Doodles  []Use   `toml:"doodles"`
}

// Use places a library doodle in a frame. Placement fields that are set
// replace the ones given in the library, field by field.
type Use struct {
	Name string `toml:"name"`
	Placement
}

// Placement moves and scales a shape. Unset fields mean scale 1 and no
// offset.
type Placement struct {
	Scale *float64 `toml:"scale"`
	XOff  *float64 `toml:"x_off"`
	YOff  *float64 `toml:"y_off"`
}

// over returns p with the fields set in q replaced.
func (p Placement) over(q Placement) Placement {
	if q.Scale != nil {
		p.Scale = q.Scale
	}
	if q.XOff != nil {
		p.XOff = q.XOff
	}
	if q.YOff != nil {
		p.YOff = q.YOff
	}
	return p
}

func (p Placement) values() (scale, xoff, yoff float64) {
	scale = 1
	if p.Scale != nil {
		scale = *p.Scale
	}
	if p.XOff != nil {
		xoff = *p.XOff
	}
	if p.YOff != nil {
		yoff = *p.YOff
	}
	return scale, xoff, yoff
}

// Parse reads a scene. Unknown keys are an error so that typos do not
// silently fall back to defaults.
func Parse(r io.Reader) (*Scene, error) {
	var sc Scene
	md, err := toml.NewDecoder(r).Decode(&sc)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := undecoded(md); err != nil {
		return nil, err
	}
	for i, f := range sc.Frames {
		if f.Duration < 0 {
			return nil, fmt.Errorf("%w: frame %d has negative duration %v", ErrRange, i, f.Duration)
		}
		for j, u := range f.Doodles {
			if u.Name == "" {
				return nil, fmt.Errorf("%w: frame %d doodle %d has no name", ErrSyntax, i, j)
			}
		}
	}
	return &sc, nil
}

func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrSyntax, strings.Join(names, ", "))
}

// Compile appends one catalog doodle per frame of sc to b, resolving doodle
// names in lib.
func Compile(sc *Scene, lib *Library, b *catalog.Builder) error {
	for i, f := range sc.Frames {
		shapes, err := Shapes(sc, lib, i)
		if err != nil {
			return err
		}
		d := catalog.Doodle{
			Duration: time.Duration(int64(f.Duration*1000)) * time.Millisecond,
			Shapes:   shapes,
		}
		if err := b.Add(d); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		xydoodle.Logger().Debug("scene: frame compiled", "frame", i, "shapes", len(shapes), "duration", d.Duration)
	}
	return nil
}

// Shapes returns the shapes frame i of sc compiles to.
func Shapes(sc *Scene, lib *Library, i int) ([]shape.Shape, error) {
	if i < 0 || i >= len(sc.Frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrRange, i, len(sc.Frames))
	}
	var out []shape.Shape
	for _, u := range sc.Frames[i].Doodles {
		specs, err := lib.Load(u.Name)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		for j, sp := range specs {
			s, err := sp.Shape(sp.Placement.over(u.Placement))
			if err != nil {
				return nil, fmt.Errorf("frame %d: doodle %q shape %d: %w", i, u.Name, j, err)
			}
			out = append(out, s)
		}
	}
	return out, nil
}
