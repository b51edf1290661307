// internal/cache/cache.go - Cache-aside store contract
package cache

import "io"

// Key addresses one cached tile. No entry is ever addressed by any other key.
type Key struct {
	Tileset string
	X       uint32
	Y       uint32
	Z       uint32
}

// Cache is a cache-aside byte store for encoded tiles, abstracted behind
// interchangeable strategies selected at construction time.
//
// Lookup reports whether an entry existed for the key; when it did, consumer
// is invoked exactly once with a reader positioned at the entry's start. A
// consumer error (e.g. a decode failure on stale bytes) is the caller's
// concern and does not change the return value.
//
// Store invokes producer with a writer that persists the entry. Entries are
// published atomically: a concurrent Lookup sees either nothing or a complete
// entry. Store failures must be treated as non-fatal by callers.
//
// Operations on different keys never block each other.
type Cache interface {
	Lookup(key Key, consumer func(io.Reader) error) bool
	Store(key Key, producer func(io.Writer) error) error
}
