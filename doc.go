// Package xydoodle plays doodles on an XY vector display.
//
// # Overview
//
// A vector display is driven by three channels: horizontal deflection,
// vertical deflection and beam intensity. xydoodle keeps a catalog of
// doodles (ordered shape lists, each with an on-screen duration) and
// retraces the current doodle until its time is up, then moves on, wrapping
// after the last one. Every coordinate, radius and angle is a Q8.8
// fixed-point number, so the same engine runs on an 8-bit microcontroller
// and on a host.
//
// # Packages
//
//   - fixed: Q8.8 arithmetic and the quarter-wave sinpi table
//   - shape: the shape variants (arc, line, poly, rect, circle, ellipse)
//   - catalog: the binary catalog format and the per-doodle loader
//   - clock: the millisecond clock and its hardware timer boundary
//   - player: the playback loop
//   - sink: the sample sink boundary and its registry
//   - scene: compiles TOML scenes into catalogs
//
// Sink implementations live under sink/ and register themselves on import:
//
//	import _ "github.com/gogpu/xydoodle/sink/phosphor"
//
//	s, err := sink.New("phosphor", sink.Options{Output: "frame.png"})
//
// # Commands
//
//   - cmd/doodlec compiles a scene into a catalog and lists catalogs
//   - cmd/xydoodle plays a catalog on any registered sink
//   - cmd/sinpigen regenerates the sinpi table
//
// # Coordinate System
//
//   - Origin (0,0) at the bottom-left of the screen
//   - X increases right, Y increases up, both in [0, 256)
//   - Angles in half turns: 1.0 is π, 2.0 is a full turn, counter-clockwise
//
// # Logging
//
// The library is silent unless [SetLogger] installs a logger.
package xydoodle

// Version is the current version of the module.
const Version = "0.1.0"
