// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/xydoodle/internal/cache"
)

// DefaultCacheSize is the number of parsed doodles a Library keeps.
const DefaultCacheSize = 64

// Library resolves doodle names to shape lists stored as <name>.toml files.
// Parsed doodles are kept in a bounded cache, so a doodle used by many
// frames is read once.
type Library struct {
	fsys  fs.FS
	cache *cache.Cache[string, []Spec]
}

// NewLibrary returns a library reading from fsys that caches up to size
// parsed doodles. size defaults to DefaultCacheSize.
func NewLibrary(fsys fs.FS, size ...int) *Library {
	n := DefaultCacheSize
	if len(size) > 0 && size[0] > 0 {
		n = size[0]
	}
	return &Library{fsys: fsys, cache: cache.New[string, []Spec](n)}
}

type doodleFile struct {
	Shapes []Spec `toml:"shapes"`
}

// Load returns the shapes of the named doodle.
func (l *Library) Load(name string) ([]Spec, error) {
	if specs, ok := l.cache.Get(name); ok {
		return specs, nil
	}
	file := name + ".toml"
	if !fs.ValidPath(file) || path.Base(file) != file {
		return nil, fmt.Errorf("%w: doodle name %q", ErrSyntax, name)
	}
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("scene: doodle %q: %w", name, err)
	}

	var df doodleFile
	md, err := toml.Decode(string(data), &df)
	if err != nil {
		return nil, fmt.Errorf("scene: doodle %q: %w", name, err)
	}
	if err := undecoded(md); err != nil {
		return nil, fmt.Errorf("doodle %q: %w", name, err)
	}
	for i, sp := range df.Shapes {
		if err := sp.validate(); err != nil {
			return nil, fmt.Errorf("doodle %q shape %d: %w", name, i, err)
		}
	}
	l.cache.Set(name, df.Shapes)
	return df.Shapes, nil
}
