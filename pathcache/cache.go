// SPDX-License-Identifier: MIT

// Package pathcache memoizes sub-paths discovered by committed flows so that
// later searches can splice them instead of exploring again.
//
// Entries are keyed by the unordered node pair and stored oriented from the
// smaller node id; Get reverses the stored edges when asked from the larger
// end. Entries are never invalidated: resources only deplete, so a cached
// sub-path is a candidate that the consumer must re-validate against the
// present counters (network.Instance.CheckPath) before use.
//
// Population (Populate) walks a committed flow and stores the sub-path
// between every pair of its nodes where at least one is a demand endpoint.
// All-interior pairs are skipped.
package pathcache

import (
	"slices"

	"github.com/AminosDz/routing-problem/network"
)

// Key is an unordered node pair, Lo <= Hi.
type Key struct {
	Lo, Hi int
}

// KeyOf returns the key for the pair {a, b}.
func KeyOf(a, b int) Key {
	if a > b {
		a, b = b, a
	}
	return Key{Lo: a, Hi: b}
}

// Stats counts lookups since creation.
type Stats struct {
	Hits   int
	Misses int
}

// Cache is a single-owner memo of sub-paths. It is not safe for concurrent
// use.
type Cache struct {
	entries map[Key][]int
	stats   Stats
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key][]int)}
}

// Put stores edges, a walk from node from to node to. A later Put for the
// same pair replaces the entry. Empty walks are ignored.
func (c *Cache) Put(from, to int, edges []int) {
	if len(edges) == 0 || from == to {
		return
	}
	stored := slices.Clone(edges)
	if from > to {
		slices.Reverse(stored)
	}
	c.entries[KeyOf(from, to)] = stored
}

// Get returns a fresh copy of the cached walk from node from to node to.
func (c *Cache) Get(from, to int) ([]int, bool) {
	stored, ok := c.entries[KeyOf(from, to)]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	out := slices.Clone(stored)
	if from > to {
		slices.Reverse(out)
	}
	return out, true
}

// Has reports whether the pair has an entry, without counting a lookup.
func (c *Cache) Has(a, b int) bool {
	_, ok := c.entries[KeyOf(a, b)]
	return ok
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns lookup counters.
func (c *Cache) Stats() Stats { return c.stats }

// Populate stores every endpoint-anchored sub-path of f and returns how many
// entries were written. f must be a valid walk on in.
func (c *Cache) Populate(in *network.Instance, f network.Flow) (int, error) {
	nodes, err := in.Walk(f.Start, f.Edges)
	if err != nil {
		return 0, err
	}
	written := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !in.Nodes[nodes[i]].Endpoint && !in.Nodes[nodes[j]].Endpoint {
				continue
			}
			c.Put(nodes[i], nodes[j], f.Edges[i:j])
			written++
		}
	}
	return written, nil
}
