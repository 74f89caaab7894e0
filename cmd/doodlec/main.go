// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command doodlec compiles a TOML scene into a doodle catalog, or lists the
// contents of an existing catalog.
//
// Usage:
//
//	doodlec [-d doodles] [-o out.xyd] [-id uuid] scene.toml
//	doodlec -l catalog.xyd
//
// Doodle names in the scene resolve to <doodles>/<name>.toml. The doodle
// directory defaults to the scene's directory and the output to the scene
// path with a .xyd extension.
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
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/xydoodle"
	"github.com/gogpu/xydoodle/catalog"
	"github.com/gogpu/xydoodle/scene"
	"github.com/gogpu/xydoodle/shape"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("doodlec: %v", err)
	}
}

func run(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("doodlec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir     = fs.String("d", "", "doodle library directory (default: the scene's directory)")
		output  = fs.String("o", "", "output catalog (default: scene path with .xyd)")
		id      = fs.String("id", "", "catalog id (default: random)")
		list    = fs.Bool("l", false, "list a catalog instead of compiling")
		verbose = fs.Bool("v", false, "log debug messages")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: doodlec [flags] scene.toml\n       doodlec -l catalog.xyd")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one input path")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	xydoodle.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer xydoodle.SetLogger(nil)

	if *list {
		return dump(stdout, fs.Arg(0))
	}
	return compile(stdout, fs.Arg(0), *dir, *output, *id)
}

func compile(stdout io.Writer, path, dir, output, id string) error {
	var catID uuid.UUID
	if id != "" {
		var err error
		if catID, err = uuid.Parse(id); err != nil {
			return fmt.Errorf("id: %w", err)
		}
	}
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".xyd"
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	sc, err := scene.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	b := catalog.NewBuilder(catID)
	if err := scene.Compile(sc, scene.NewLibrary(os.DirFS(dir)), b); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	n, err := b.WriteTo(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		return err
	}
	message.NewPrinter(language.English).Fprintf(stdout,
		"%s: %d doodles, %d bytes, id %s\n", output, b.Len(), n, b.ID())
	return nil
}

func dump(stdout io.Writer, path string) error {
	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "catalog %s: %d doodles, %d bytes\n", cat.ID(), cat.Len(), cat.Size())

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tduration\tshapes\tpoints\tbytes\tkinds")
	for i := range cat.Len() {
		h, err := cat.Header(i)
		if err != nil {
			return err
		}
		kinds := "?"
		if d, err := cat.Doodle(i); err == nil {
			kinds = kindSummary(d.Shapes)
		}
		p.Fprintf(tw, "%d\t%dms\t%d\t%d\t%d\t%s\n", i, h.DurationMS, h.Shapes, h.Points, h.Size, kinds)
	}
	return tw.Flush()
}

// kindSummary counts shapes per kind, in kind order.
func kindSummary(shapes []shape.Shape) string {
	var counts [shape.KindPoly + 1]int
	for _, s := range shapes {
		counts[s.Kind()]++
	}
	var parts []string
	for k, n := range counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s×%d", shape.Kind(k), n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
