// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glyph

import (
	"errors"
	"sync"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scan"
	"github.com/gogpu/scan/cache"
)

// DefaultCacheCapacity bounds the default mask cache. A few screens'
// worth of distinct glyph/size pairs.
const DefaultCacheCapacity = 1024

type maskKey struct {
	font uint64
	gid  GlyphID
	ppem fixed.Int26_6
}

// Cache memoizes rasterized glyph masks with LRU eviction: the live
// working set is whatever text is currently being drawn.
//
// Masks are shared; callers must treat them as immutable.
type Cache struct {
	masks *cache.LRU[maskKey, *Mask]

	mu sync.Mutex
	r  *Rasterizer
}

// NewCache creates a mask cache holding at most capacity masks.
func NewCache(capacity int) *Cache {
	return &Cache{
		masks: cache.NewLRU[maskKey, *Mask](capacity),
		r:     NewRasterizer(),
	}
}

// Mask returns the rasterized mask for one glyph at the given size,
// rasterizing on a miss. Empty glyphs return (nil, nil).
func (c *Cache) Mask(f *Font, gid GlyphID, ppem fixed.Int26_6) (*Mask, error) {
	key := maskKey{font: f.ID, gid: gid, ppem: ppem}
	if m, ok := c.masks.Get(key); ok {
		return m, nil
	}

	c.mu.Lock()
	m, err := c.r.Rasterize(f, gid, ppem)
	c.mu.Unlock()
	if errors.Is(err, ErrEmptyGlyph) {
		m = nil
	} else if err != nil {
		return nil, err
	}

	c.masks.Set(key, m)
	return m, nil
}

// Clear drops all cached masks.
func (c *Cache) Clear() {
	c.masks.Clear()
}

// Stats returns the mask cache counters.
func (c *Cache) Stats() cache.Stats {
	return c.masks.Stats()
}

// defaultCache serves the package-level helpers; ResetStaticData
// empties it.
var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

func getDefaultCache() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewCache(DefaultCacheCapacity)
		scan.RegisterStaticReset(defaultCache.Clear)
	})
	return defaultCache
}

// DefaultCache returns the shared process-wide mask cache.
func DefaultCache() *Cache {
	return getDefaultCache()
}

// Rasterized returns a glyph mask from the shared cache.
func Rasterized(f *Font, gid GlyphID, ppem fixed.Int26_6) (*Mask, error) {
	return getDefaultCache().Mask(f, gid, ppem)
}
