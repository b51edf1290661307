// internal/cache/noop.go - Disabled cache strategy
package cache

import "io"

// Noop disables caching: every lookup misses and every store is dropped.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (c *Noop) Lookup(Key, func(io.Reader) error) bool {
	return false
}

func (c *Noop) Store(Key, func(io.Writer) error) error {
	return nil
}
