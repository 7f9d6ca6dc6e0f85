// SPDX-License-Identifier: MIT

package search

import (
	"sort"

	"github.com/AminosDz/routing-problem/network"
)

// Levels holds the two innermost frontier levels around Root, computed on
// static topology (counters are ignored).
type Levels struct {
	Root int

	// One is the set of nodes adjacent to Root.
	One map[int]struct{}

	// Two maps every node reachable from Root in exactly two hops to the
	// relays in One that connect it to Root, ascending. Nodes of One can
	// appear here too (triangles); Root never does.
	Two map[int][]int
}

// Size is the total number of entries in both levels.
func (l *Levels) Size() int { return len(l.One) + len(l.Two) }

// Adjacent reports whether n is one hop from Root.
func (l *Levels) Adjacent(n int) bool {
	_, ok := l.One[n]
	return ok
}

// FrontierIndex memoizes Levels per node. It is filled lazily: a node's
// levels are computed the first time a demand touches it and reused for the
// rest of the solve.
type FrontierIndex struct {
	in     *network.Instance
	levels map[int]*Levels
}

// NewFrontierIndex returns an empty index over in.
func NewFrontierIndex(in *network.Instance) *FrontierIndex {
	return &FrontierIndex{in: in, levels: make(map[int]*Levels)}
}

// Levels returns the frontier levels of root, computing them once.
func (f *FrontierIndex) Levels(root int) *Levels {
	if l, ok := f.levels[root]; ok {
		return l
	}
	l := &Levels{Root: root, One: make(map[int]struct{}), Two: make(map[int][]int)}
	for _, a := range f.in.Nodes[root].Neighbors() {
		l.One[a.Node] = struct{}{}
	}
	for _, a := range f.in.Nodes[root].Neighbors() {
		for _, b := range f.in.Nodes[a.Node].Neighbors() {
			if b.Node == root {
				continue
			}
			l.Two[b.Node] = append(l.Two[b.Node], a.Node)
		}
	}
	for _, relays := range l.Two {
		sort.Ints(relays)
	}
	f.levels[root] = l
	return l
}

// Len returns the number of memoized roots.
func (f *FrontierIndex) Len() int { return len(f.levels) }
