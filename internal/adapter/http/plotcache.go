package http

import "sync"

// plotCache is a thread-safe LRU cache of encoded PNG plots, keyed by report
// ID and figure name. A size of zero disables caching.
type plotCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*plotEntry
	head       *plotEntry // most recently used
	tail       *plotEntry // least recently used
}

type plotEntry struct {
	key  string
	data []byte
	prev *plotEntry
	next *plotEntry
}

func newPlotCache(maxEntries int) *plotCache {
	return &plotCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*plotEntry),
	}
}

func plotKey(reportID, figure string) string {
	return reportID + "|" + figure
}

func (c *plotCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.data, true
}

func (c *plotCache) put(key string, data []byte) {
	if c.maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.data = data
		c.moveToFront(e)
		return
	}

	e := &plotEntry{key: key, data: data}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *plotCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *plotCache) moveToFront(e *plotEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *plotCache) addToFront(e *plotEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *plotCache) remove(e *plotEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *plotCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
