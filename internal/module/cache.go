// SPDX-License-Identifier: MPL-2.0

package module

import (
	"maps"
	"slices"
)

// Cache maps resolved paths to module records. Entries live for the lifetime
// of the Cache; there is no eviction or invalidation.
type Cache struct {
	records map[string]*Module
}

// NewCache creates an empty module cache.
func NewCache() *Cache {
	return &Cache{records: make(map[string]*Module)}
}

// Get returns the record for filename, which may still be loading.
func (c *Cache) Get(filename string) (*Module, bool) {
	m, ok := c.records[filename]
	return m, ok
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return len(c.records)
}

// Paths returns the cached resolved paths in lexical order.
func (c *Cache) Paths() []string {
	return slices.Sorted(maps.Keys(c.records))
}

func (c *Cache) put(m *Module) {
	c.records[m.Filename] = m
}

func (c *Cache) remove(filename string) {
	delete(c.records, filename)
}
