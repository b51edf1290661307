// internal/cache/memory.go - In-memory LRU cache strategy
package cache

import (
	"bytes"
	"container/list"
	"io"
	"sync"
)

type memEntry struct {
	key  Key
	data []byte
}

// Memory is a bounded in-memory cache strategy with LRU eviction. The bound
// is internal to the strategy; the cache contract itself mandates none.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	items      map[Key]*list.Element
	order      *list.List
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Memory{
		maxEntries: maxEntries,
		items:      make(map[Key]*list.Element),
		order:      list.New(),
	}
}

func (c *Memory) Lookup(key Key, consumer func(io.Reader) error) bool {
	c.mu.Lock()
	elem, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.order.MoveToFront(elem)
	data := elem.Value.(*memEntry).data
	c.mu.Unlock()

	// Entries are immutable once stored, so the consumer runs unlocked.
	consumer(bytes.NewReader(data))
	return true
}

func (c *Memory) Store(key Key, producer func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := producer(&buf); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*memEntry).data = buf.Bytes()
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			delete(c.items, oldest.Value.(*memEntry).key)
			c.order.Remove(oldest)
		}
	}

	c.items[key] = c.order.PushFront(&memEntry{key: key, data: buf.Bytes()})
	return nil
}
