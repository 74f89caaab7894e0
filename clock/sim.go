// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clock

import (
	"context"
	"sync"
	"time"
)

// SimTimer models an 8-bit clear-on-compare timer on the host: a counter,
// a compare flag and an interrupt enable bit. Step advances it by hand for
// tests; Drive advances it in real time.
//
// The tick handler runs with the timer's lock held, as an interrupt handler
// runs with interrupts off, so it must not call back into the timer.
type SimTimer struct {
	mu      sync.Mutex
	top     uint8
	count   uint8
	enabled bool
	pending bool
	tick    func()
}

// NewSimTimer returns a stopped timer.
func NewSimTimer() *SimTimer {
	return &SimTimer{}
}

// Start implements Timer.
func (t *SimTimer) Start(top uint8, tick func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.top = top
	t.count = 0
	t.pending = false
	t.tick = tick
	t.enabled = true
}

// Mask implements Timer.
func (t *SimTimer) Mask() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := t.enabled
	t.enabled = false
	return was
}

// Restore implements Timer.
func (t *SimTimer) Restore(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
	t.service()
}

// Pending implements Timer.
func (t *SimTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Step advances the counter by n timer counts. Reaching the compare value
// clears the counter and raises the compare flag; the handler runs at once
// if the interrupt is enabled, otherwise when Restore enables it.
func (t *SimTimer) Step(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tick == nil {
		return
	}
	for range n {
		if t.count == t.top {
			t.count = 0
			t.pending = true
		} else {
			t.count++
		}
		t.service()
	}
}

// Drive steps one full tick every interval until ctx is done.
func (t *SimTimer) Drive(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.mu.Lock()
			n := int(t.top) + 1
			t.mu.Unlock()
			t.Step(n)
		}
	}
}

func (t *SimTimer) service() {
	if t.pending && t.enabled {
		t.pending = false
		t.tick()
	}
}
