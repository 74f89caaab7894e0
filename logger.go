package xydoodle

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so callers skip
// attribute formatting and a silent player pays nothing per log call.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var silent = slog.New(discardHandler{})

// current holds the active logger. SetLogger may race with the playback
// goroutine and with sink goroutines, hence the atomic pointer.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger installs the logger shared by xydoodle and its sub-packages.
// The default produces no output. Passing nil restores the silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: skipped shapes, staged arena sizes, dropped stream frames
//   - [slog.LevelInfo]: catalog opened, sink selected, playback pass completed
//   - [slog.LevelWarn]: unreadable doodles, sink write errors
//
// Example:
//
//	xydoodle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger. Sub-packages call it at
// log time rather than caching it, so a later SetLogger takes effect.
func Logger() *slog.Logger {
	return current.Load()
}
