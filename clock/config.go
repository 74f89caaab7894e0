// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clock

import (
	"errors"
	"fmt"
)

// ErrPeriod reports a tick rate that the timer cannot produce exactly.
var ErrPeriod = errors.New("clock: tick period not achievable")

// Config describes the tick source: an 8-bit timer in clear-on-compare mode
// counting the CPU clock divided by a prescaler.
type Config struct {
	CPUHz     uint32
	Prescaler uint32
	TickHz    uint32
}

// Default is a 16 MHz part with a /64 prescaler ticking at 1 kHz.
var Default = Config{CPUHz: 16_000_000, Prescaler: 64, TickHz: 1000}

// Counts returns the timer counts per tick.
func (c Config) Counts() (uint32, error) {
	if c.Prescaler == 0 || c.TickHz == 0 {
		return 0, fmt.Errorf("%w: prescaler %d, tick rate %d Hz", ErrPeriod, c.Prescaler, c.TickHz)
	}
	div := uint64(c.Prescaler) * uint64(c.TickHz)
	if uint64(c.CPUHz)%div != 0 {
		return 0, fmt.Errorf("%w: %d Hz / %d is not a multiple of %d Hz", ErrPeriod, c.CPUHz, c.Prescaler, c.TickHz)
	}
	n := uint64(c.CPUHz) / div
	if n == 0 || n > 256 {
		return 0, fmt.Errorf("%w: %d counts per tick does not fit an 8-bit timer", ErrPeriod, n)
	}
	return uint32(n), nil
}

// Top returns the compare value. The timer clears after matching it, so a
// tick spans top+1 counts.
func (c Config) Top() (uint8, error) {
	n, err := c.Counts()
	if err != nil {
		return 0, err
	}
	return uint8(n - 1), nil
}
