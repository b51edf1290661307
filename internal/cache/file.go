// internal/cache/file.go - File-backed cache strategy
package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// File persists one entry per {base}/{tileset}/{z}/{x}/{y}.pbf. Entries are
// published by writing to a temp file and renaming, so readers never observe
// a partially written entry.
type File struct {
	base string
}

func NewFile(base string) (*File, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &File{base: base}, nil
}

func (c *File) path(key Key) string {
	return filepath.Join(
		c.base,
		key.Tileset,
		strconv.FormatUint(uint64(key.Z), 10),
		strconv.FormatUint(uint64(key.X), 10),
		strconv.FormatUint(uint64(key.Y), 10)+".pbf",
	)
}

func (c *File) Lookup(key Key, consumer func(io.Reader) error) bool {
	f, err := os.Open(c.path(key))
	if err != nil {
		return false
	}
	defer f.Close()

	if err := consumer(f); err != nil {
		log.Debugf("cache read for %s/%d/%d/%d: %v", key.Tileset, key.Z, key.X, key.Y, err)
	}
	return true
}

func (c *File) Store(key Key, producer func(io.Writer) error) error {
	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache entry directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tile-*")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}

	if err := producer(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish cache entry: %w", err)
	}
	return nil
}
