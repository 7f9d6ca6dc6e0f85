// SPDX-License-Identifier: MIT

// Package policy decides which edge, if any, may extend a partial path.
//
// Admissible is the pure predicate: an edge may follow prev for a demand of
// a given rate iff it is not exclusive with prev, its group quota is
// positive and its remaining capacity covers the rate.
//
// A Policy picks one edge among the parallel edges joining two nodes.
// FirstFit takes the first admissible edge in adjacency order (cheapest,
// and equivalent to the others when adjacency was pre-sorted with
// Policy.Compare). MinDistance and MaxCapacity scan every admissible edge
// and take the extremum, keeping the earliest on ties. A Policy is a value
// chosen once per solve; it is never re-selected per call.
package policy

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/AminosDz/routing-problem/network"
)

// ErrUnknownPolicy is returned by Parse for an unrecognized name.
var ErrUnknownPolicy = errors.New("policy: unknown edge selection policy")

// Policy selects one edge among parallel candidates.
type Policy struct {
	name string

	// better reports whether a should be preferred over b; nil means the
	// first admissible candidate wins.
	better func(a, b *network.Edge) bool
}

var (
	// FirstFit returns the first admissible edge in adjacency order.
	FirstFit = Policy{name: "first_fit"}

	// MinDistance returns the admissible edge with the smallest distance.
	MinDistance = Policy{
		name:   "min_dist",
		better: func(a, b *network.Edge) bool { return a.Distance < b.Distance },
	}

	// MaxCapacity returns the admissible edge with the largest remaining capacity.
	MaxCapacity = Policy{
		name:   "max_cap",
		better: func(a, b *network.Edge) bool { return a.Capacity > b.Capacity },
	}
)

// Parse maps a configuration name to a Policy. "first_found" is accepted as
// an alias of "first_fit".
func Parse(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first_fit", "first_found", "first":
		return FirstFit, nil
	case "min_dist", "min_distance":
		return MinDistance, nil
	case "max_cap", "max_capacity":
		return MaxCapacity, nil
	}
	return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Name returns the canonical configuration name.
func (p Policy) Name() string {
	if p.name == "" {
		return FirstFit.name
	}
	return p.name
}

// String implements fmt.Stringer.
func (p Policy) String() string { return p.Name() }

// Compare orders edges by preference (negative when a is preferred). It is
// meant for network.WithEdgeOrder so that adjacency is pre-sorted once.
// FirstFit leaves the order unchanged.
func (p Policy) Compare(a, b *network.Edge) int {
	if p.better == nil {
		return 0
	}
	switch {
	case p.better(a, b):
		return -1
	case p.better(b, a):
		return 1
	}
	return cmp.Compare(a.ID, b.ID)
}

// Choose returns the preferred admissible edge among candidates, which are
// parallel edges joining the same node pair. ok is false when none is
// admissible.
func (p Policy) Choose(in *network.Instance, candidates []int, prev int, rate int64) (edge int, ok bool) {
	var best *network.Edge
	for _, id := range candidates {
		e := in.Edges[id]
		if !Admissible(in, e, prev, rate) {
			continue
		}
		if p.better == nil {
			return id, true
		}
		if best == nil || p.better(e, best) {
			best = e
		}
	}
	if best == nil {
		return network.NoEdge, false
	}
	return best.ID, true
}

// Admissible reports whether e may follow edge prev (network.NoEdge for the
// first hop) in a path carrying rate. It has no side effects.
func Admissible(in *network.Instance, e *network.Edge, prev int, rate int64) bool {
	if prev != network.NoEdge && e.Excludes(prev) {
		return false
	}
	if in.GroupOf(e).Limit <= 0 {
		return false
	}
	return e.Capacity >= rate
}
