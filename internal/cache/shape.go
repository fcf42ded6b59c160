// Package cache provides the shape cache used during a single generation pass.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
)

// DefaultMaxShapes bounds the number of object shapes kept per generation.
const DefaultMaxShapes = 4096

// Shape is a previously derived object shape. Text is its canonical
// zero-indent rendering; callers re-render Type at their own indentation.
type Shape struct {
	Type models.TypeInfo
	Text string
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
}

// ShapeCache maps an object fingerprint to its derived shape.
// A ShapeCache belongs to one generation call and must not be shared
// between concurrent calls.
type ShapeCache struct {
	cache *lru.Cache[string, Shape]
	stats Stats
}

// NewShapeCache creates a cache holding at most maxShapes entries.
// A non-positive maxShapes selects DefaultMaxShapes.
func NewShapeCache(maxShapes int) (*ShapeCache, error) {
	if maxShapes <= 0 {
		maxShapes = DefaultMaxShapes
	}
	c, err := lru.New[string, Shape](maxShapes)
	if err != nil {
		return nil, err
	}
	return &ShapeCache{cache: c}, nil
}

// Get retrieves the shape stored under fingerprint.
func (c *ShapeCache) Get(fingerprint string) (Shape, bool) {
	s, ok := c.cache.Get(fingerprint)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return s, ok
}

// Put stores t under fingerprint.
func (c *ShapeCache) Put(fingerprint string, t models.TypeInfo) {
	c.cache.Add(fingerprint, Shape{Type: t, Text: t.Signature()})
}

// Len returns the number of cached shapes.
func (c *ShapeCache) Len() int {
	return c.cache.Len()
}

// Stats returns the hit and miss counters.
func (c *ShapeCache) Stats() Stats {
	return c.stats
}

// Reset drops every entry and zeroes the counters.
func (c *ShapeCache) Reset() {
	c.cache.Purge()
	c.stats = Stats{}
}
