// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package clock provides the free-running millisecond counter that paces
// playback.
//
// The counter is advanced by exactly one from the timer's tick handler and by
// nothing else. Readers mask the tick, load the counter, sample the timer's
// compare flag and restore the mask. If the flag shows a tick that has
// happened but whose handler has not yet run, the read adds the missing
// millisecond itself. Without that compensation a read taken inside the
// window would be one behind a read taken just before it.
package clock

import (
	"sync/atomic"

	"github.com/gogpu/xydoodle"
)

// Timer is the hardware tick source.
//
// Mask and Restore bracket a critical section the way saving the status
// register, disabling interrupts and writing the register back do: Restore
// puts back exactly the state Mask found, it never enables unconditionally.
type Timer interface {
	// Start programs the compare value and installs the tick handler.
	Start(top uint8, tick func())
	// Mask disables the tick interrupt and reports whether it was enabled.
	Mask() bool
	// Restore sets the tick interrupt enable to enabled. A tick that became
	// pending while masked is delivered if enabled is true.
	Restore(enabled bool)
	// Pending reports whether a tick has occurred whose handler has not run.
	Pending() bool
}

// Clock is a millisecond counter. It wraps after about 49.7 days; compare
// readings by unsigned subtraction.
type Clock struct {
	ms atomic.Uint32
	hw Timer
}

// New validates cfg, starts hw and returns a clock at zero. A configuration
// whose tick period would drift fails with ErrPeriod.
func New(hw Timer, cfg Config) (*Clock, error) {
	top, err := cfg.Top()
	if err != nil {
		return nil, err
	}
	c := &Clock{hw: hw}
	hw.Start(top, c.tick)
	xydoodle.Logger().Info("clock: started", "top", top, "tick_hz", cfg.TickHz)
	return c, nil
}

func (c *Clock) tick() {
	c.ms.Add(1)
}

// Millis returns the milliseconds since New. Successive calls never return
// a smaller value, modulo wrap-around.
func (c *Clock) Millis() uint32 {
	enabled := c.hw.Mask()
	ms := c.ms.Load()
	pending := c.hw.Pending()
	c.hw.Restore(enabled)

	if pending {
		ms++
	}
	return ms
}
