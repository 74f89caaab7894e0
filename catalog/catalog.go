// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package catalog stores doodles in a compact read-only binary image and
// stages them one at a time into a reusable working buffer.
//
// A Catalog never holds decoded doodles. It reads the header once and then
// reads index entries and records on demand through an io.ReaderAt, which
// may be a memory-mapped file (Open), a byte slice (FromBytes) or any other
// random-access storage (New). A Loader copies exactly one doodle into its
// Frame, so working memory follows the largest doodle staged, not the size
// of the catalog.
package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/mmap"

	"github.com/gogpu/xydoodle"
)

// Catalog is an immutable doodle catalog. It is safe for concurrent use if
// the underlying storage is.
type Catalog struct {
	r      io.ReaderAt
	size   int64
	count  int
	id     uuid.UUID
	index  int64
	closer io.Closer
}

// New reads the catalog header from r, whose total size is size.
func New(r io.ReaderAt, size int64) (*Catalog, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrFormat, size)
	}
	var h [HeaderSize]byte
	if _, err := r.ReadAt(h[:], 0); err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}
	if string(h[offMagic:offMagic+len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, h[offMagic:offMagic+len(Magic)])
	}
	if h[offVersion] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, h[offVersion])
	}

	c := &Catalog{
		r:     r,
		size:  size,
		count: int(binary.LittleEndian.Uint16(h[offCount:])),
		index: int64(binary.LittleEndian.Uint32(h[offIndex:])),
	}
	copy(c.id[:], h[offID:offID+16])

	if c.index < HeaderSize || c.index+4*int64(c.count) > size {
		return nil, fmt.Errorf("%w: index of %d entries at %d exceeds %d bytes", ErrRange, c.count, c.index, size)
	}
	return c, nil
}

// FromBytes returns a catalog over an in-memory image.
func FromBytes(b []byte) (*Catalog, error) {
	return New(bytes.NewReader(b), int64(len(b)))
}

// Open memory-maps the catalog file at path. Close unmaps it.
func Open(path string) (*Catalog, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := New(m, int64(m.Len()))
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	c.closer = m
	xydoodle.Logger().Info("catalog: opened", "path", path, "doodles", c.count, "id", c.id, "bytes", c.size)
	return c, nil
}

// Close releases the storage opened by Open. It is a no-op otherwise.
func (c *Catalog) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// Len returns the number of doodles.
func (c *Catalog) Len() int {
	return c.count
}

// ID returns the build id the catalog was stamped with.
func (c *Catalog) ID() uuid.UUID {
	return c.id
}

// Size returns the size of the catalog image in bytes.
func (c *Catalog) Size() int64 {
	return c.size
}

// Header returns the record header of doodle i. The record body is checked
// to lie inside the storage.
func (c *Catalog) Header(i int) (RecordHeader, error) {
	h, _, err := c.header(i)
	return h, err
}

func (c *Catalog) header(i int) (RecordHeader, int64, error) {
	if i < 0 || i >= c.count {
		return RecordHeader{}, 0, fmt.Errorf("%w: doodle %d of %d", ErrRange, i, c.count)
	}
	var b [RecordSize]byte
	if _, err := c.r.ReadAt(b[:4], c.index+4*int64(i)); err != nil {
		return RecordHeader{}, 0, fmt.Errorf("catalog: read index %d: %w", i, err)
	}
	off := int64(binary.LittleEndian.Uint32(b[:4]))
	if off < HeaderSize || off+RecordSize > c.size {
		return RecordHeader{}, 0, fmt.Errorf("%w: doodle %d record at %d", ErrRange, i, off)
	}
	if _, err := c.r.ReadAt(b[:], off); err != nil {
		return RecordHeader{}, 0, fmt.Errorf("catalog: read doodle %d: %w", i, err)
	}
	h := parseRecordHeader(b[:])
	body := off + RecordSize
	if body+int64(h.Size) > c.size {
		return RecordHeader{}, 0, fmt.Errorf("%w: doodle %d body of %d bytes at %d", ErrRange, i, h.Size, body)
	}
	return h, body, nil
}

// Doodle decodes doodle i into newly allocated memory. Playback uses a
// Loader instead.
func (c *Catalog) Doodle(i int) (Doodle, error) {
	f, err := NewLoader(c).Stage(i)
	if err != nil {
		return Doodle{}, err
	}
	return Doodle{Duration: f.Duration, Shapes: f.Shapes}, nil
}
