// Package tilecache keeps recently scaled copies of one source image.
//
// Scrolling re-derives its tile whenever the viewport or the axis changes.
// Toggling the axis back, or returning to an earlier window size, finds the
// tile already scaled:
//
//	c := tilecache.New(4)
//	tile := c.GetOrCreate(image.Pt(300, 250), func() *image.RGBA {
//	    return scale(src, 300, 250)
//	})
//
// The cache does not know the source image. Its owner calls Reset when the
// source changes.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package tilecache

import (
	"image"
	"sync"
)

// Cache is an LRU set of tiles keyed by their pixel size.
type Cache struct {
	mu      sync.Mutex
	entries map[image.Point]*entry
	limit   int
	tick    int64 // monotonic access counter
}

type entry struct {
	tile  *image.RGBA
	atime int64
}

// New creates a cache holding at most limit tiles. A limit below 1 keeps one.
func New(limit int) *Cache {
	if limit < 1 {
		limit = 1
	}
	return &Cache{
		entries: make(map[image.Point]*entry),
		limit:   limit,
	}
}

// GetOrCreate returns the cached tile of the given size or stores the result
// of create. A nil result is returned but not stored.
func (c *Cache) GetOrCreate(size image.Point, create func() *image.RGBA) *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[size]; ok {
		e.atime = c.tick
		return e.tile
	}

	tile := create()
	if tile == nil {
		return nil
	}
	c.entries[size] = &entry{tile: tile, atime: c.tick}
	if len(c.entries) > c.limit {
		c.evictOldest()
	}
	return tile
}

// Reset drops every tile.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.tick = 0
}

// evictOldest removes the least recently used tile. Caller must hold c.mu.
func (c *Cache) evictOldest() {
	var (
		oldest image.Point
		atime  int64 = -1
	)
	for size, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = size, e.atime
		}
	}
	if atime >= 0 {
		delete(c.entries, oldest)
	}
}
