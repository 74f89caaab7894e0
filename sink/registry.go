// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sink

import (
	"fmt"
	"sort"
	"sync"
)

// Options carries the host-side configuration a Factory may use. Fields a
// sink does not understand are ignored.
type Options struct {
	// Output is a file path for sinks that write files.
	Output string
	// Addr is a listen address for network sinks.
	Addr string
	// Scale multiplies the 256×256 device space for raster sinks.
	Scale int
	// SampleRate is the output rate for audio sinks, in Hz.
	SampleRate float64
	// CatalogID identifies the catalog being played, for sinks that
	// publish it.
	CatalogID string
}

// Factory creates a sink from options.
type Factory func(o Options) (Sink, error)

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a sink available under name. It is typically called from
// init() in sink packages.
//
// Register panics if factory is nil or the name is already taken.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("sink: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("sink: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a sink from the registry. Mostly useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// New creates the sink registered under name.
func New(name string, o Options) (Sink, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("sink: unknown sink %q (forgotten import?)", name)
	}
	return factory(o)
}

// Names returns the registered sink names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("discard", func(Options) (Sink, error) { return &Discard{}, nil })
}
