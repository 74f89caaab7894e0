// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package player runs the playback loop: stage a doodle, retrace it until
// its duration has elapsed, move to the next, and wrap after the last.
//
// The loop never sleeps. A vector display shows only what the beam is
// drawing right now, so a doodle stays visible only while it is being
// retraced.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/catalog"
	"github.com/gogpu/xydoodle/internal/raster"
	"github.com/gogpu/xydoodle/sink"
)

// ErrEmpty is returned by Run for a catalog without doodles.
var ErrEmpty = errors.New("player: catalog is empty")

// Clock is a millisecond counter that may wrap.
type Clock interface {
	Millis() uint32
}

// Stats counts what the player has done.
type Stats struct {
	// Doodles is the number of doodles played to the end of their duration.
	Doodles uint64
	// Frames is the number of redraw passes.
	Frames uint64
	// Samples is the number of lit samples sent to the sink.
	Samples uint64
	// Skipped counts shapes and doodles that could not be staged.
	Skipped uint64
}

// Option configures a Player.
type Option func(*options)

type options struct {
	passes int
}

// WithPasses stops Run after n passes over the catalog. The default, zero,
// plays forever.
func WithPasses(n int) Option {
	return func(o *options) {
		o.passes = n
	}
}

// Player plays a catalog on a sink.
//
// Player is not safe for concurrent use.
type Player struct {
	cat    *catalog.Catalog
	clock  Clock
	sink   sink.Sink
	framer sink.Framer
	engine *raster.Engine
	loader *catalog.Loader
	opts   options
	stats  Stats
}

// New returns a player for cat that paces itself by clk and draws to s.
// If s implements sink.Framer it is told about every redraw pass.
func New(cat *catalog.Catalog, clk Clock, s sink.Sink, opts ...Option) *Player {
	p := &Player{
		cat:    cat,
		clock:  clk,
		sink:   s,
		engine: raster.New(s),
		loader: catalog.NewLoader(cat),
	}
	p.framer, _ = s.(sink.Framer)
	for _, o := range opts {
		o(&p.opts)
	}
	return p
}

// Stats returns the counters so far.
func (p *Player) Stats() Stats {
	st := p.stats
	st.Samples = p.engine.Samples()
	return st
}

// PlayDoodle stages doodle i and retraces it until its duration has
// elapsed. The doodle is drawn at least once, even with a zero duration.
func (p *Player) PlayDoodle(i int) error {
	f, err := p.loader.Stage(i)
	if err != nil {
		p.stats.Skipped++
		return fmt.Errorf("player: doodle %d: %w", i, err)
	}
	p.stats.Skipped += uint64(f.Skipped)

	duration := uint32(f.Duration.Milliseconds())
	start := p.clock.Millis()
	for pass := 0; ; pass++ {
		if p.framer != nil {
			p.framer.BeginFrame(i, pass)
		}
		p.engine.DrawAll(f.Shapes)
		p.stats.Frames++

		if p.clock.Millis()-start >= duration {
			break
		}
	}
	p.stats.Doodles++
	return nil
}

// Run plays the catalog from the first doodle, wrapping after the last,
// until ctx is done or the configured number of passes is complete. The
// context is checked between doodles only. A doodle that cannot be staged
// is logged and skipped.
func (p *Player) Run(ctx context.Context) error {
	n := p.cat.Len()
	if n == 0 {
		return ErrEmpty
	}
	log := xydoodle.Logger()
	for pass := 0; p.opts.passes == 0 || pass < p.opts.passes; pass++ {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.PlayDoodle(i); err != nil {
				log.Warn("player: doodle skipped", "doodle", i, "err", err)
			}
		}
		log.Info("player: pass complete", "pass", pass, "frames", p.stats.Frames, "samples", p.engine.Samples())
	}
	return nil
}
