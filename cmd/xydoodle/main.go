// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command xydoodle plays a doodle catalog on a host sink.
//
// Usage:
//
//	xydoodle [flags] catalog.xyd
//
// The millisecond clock is driven by a simulated timer; -tick sets the wall
// time of one simulated millisecond, so values below 1ms fast-forward.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/catalog"
	"github.com/gogpu/xydoodle/clock"
	"github.com/gogpu/xydoodle/player"
	"github.com/gogpu/xydoodle/sink"
	_ "github.com/gogpu/xydoodle/sink/audio"
	_ "github.com/gogpu/xydoodle/sink/pdfsink"
	_ "github.com/gogpu/xydoodle/sink/phosphor"
	_ "github.com/gogpu/xydoodle/sink/screen"
	_ "github.com/gogpu/xydoodle/sink/stream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("xydoodle: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("xydoodle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		sinkName = fs.String("sink", "phosphor", "output sink")
		output   = fs.String("o", "", "output file for file sinks")
		addr     = fs.String("addr", "", "listen address for the stream sink")
		scale    = fs.Int("scale", 2, "zoom factor for raster sinks")
		rate     = fs.Float64("rate", 0, "sample rate for the audio sink, in Hz")
		passes   = fs.Int("passes", 1, "passes over the catalog, 0 plays forever")
		tick     = fs.Duration("tick", time.Millisecond, "wall time per simulated millisecond")
		verbose  = fs.Bool("v", false, "log debug messages")
		list     = fs.Bool("sinks", false, "list available sinks and exit")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: xydoodle [flags] catalog.xyd")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		fmt.Fprintln(stdout, strings.Join(sink.Names(), "\n"))
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one catalog path")
	}
	if *tick <= 0 {
		return fmt.Errorf("tick %v must be positive", *tick)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	xydoodle.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer xydoodle.SetLogger(nil)

	cat, err := catalog.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer cat.Close()

	s, err := sink.New(*sinkName, sink.Options{
		Output:     *output,
		Addr:       *addr,
		Scale:      *scale,
		SampleRate: *rate,
		CatalogID:  cat.ID().String(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hw := clock.NewSimTimer()
	clk, err := clock.New(hw, clock.Default)
	if err != nil {
		return err
	}
	go hw.Drive(ctx, *tick)

	p := player.New(cat, clk, s, player.WithPasses(*passes))
	play := func() error { return p.Run(ctx) }

	if ml, ok := s.(sink.MainLooper); ok {
		err = ml.Loop(play)
		cancel()
	} else {
		err = play()
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if c, ok := s.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	if err != nil {
		return err
	}

	st := p.Stats()
	message.NewPrinter(language.English).Fprintf(stdout,
		"%d doodles, %d frames, %d samples, %d skipped\n",
		st.Doodles, st.Frames, st.Samples, st.Skipped)
	return nil
}
