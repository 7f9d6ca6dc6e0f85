// SPDX-License-Identifier: MIT

package network

import "fmt"

// Walk follows edges from start and returns the visited node sequence
// (len(edges)+1 nodes). It fails on unknown edges and on edges that do not
// touch the current node; it does not look at counters.
func (in *Instance) Walk(start int, edges []int) ([]int, error) {
	if !in.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNodeID, start)
	}
	nodes := make([]int, 0, len(edges)+1)
	nodes = append(nodes, start)
	cur := start
	for i, id := range edges {
		if !in.HasEdge(id) {
			return nil, fmt.Errorf("%w: %d at position %d", ErrUnknownEdge, id, i)
		}
		e := in.Edges[id]
		if !e.Joins(cur) {
			return nil, fmt.Errorf("%w: edge %d does not touch node %d", ErrDisconnected, id, cur)
		}
		cur = e.Other(cur)
		nodes = append(nodes, cur)
	}
	return nodes, nil
}

// CheckPath reports whether f could be committed against the present
// counters. It returns nil for a feasible flow or an error wrapping one of
// the path sentinels (ErrEmptyPath, ErrRepeatedNode, ErrCapacity, ...).
//
// Feasible means: non-empty simple walk from f.Start ending at f.End, every
// edge with Capacity >= f.Rate, every node on the walk with Limit > 0, every
// group with Limit >= the number of its edges on the walk, and no two
// consecutive edges mutually exclusive.
func (in *Instance) CheckPath(f Flow) error {
	if len(f.Edges) == 0 {
		return ErrEmptyPath
	}
	if !in.HasNode(f.End) {
		return fmt.Errorf("%w: %d", ErrUnknownNodeID, f.End)
	}
	nodes, err := in.Walk(f.Start, f.Edges)
	if err != nil {
		return err
	}
	if last := nodes[len(nodes)-1]; last != f.End {
		return fmt.Errorf("%w: ends at %d, want %d", ErrWrongEnd, last, f.End)
	}

	seenNodes := make(map[int]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seenNodes[n]; dup {
			return fmt.Errorf("%w: %d", ErrRepeatedNode, n)
		}
		seenNodes[n] = struct{}{}
		if in.Nodes[n].Limit <= 0 {
			return fmt.Errorf("%w: node %d", ErrNodeLimit, n)
		}
	}

	seenEdges := make(map[int]struct{}, len(f.Edges))
	groupUse := make(map[int]int)
	prev := NoEdge
	for _, id := range f.Edges {
		if _, dup := seenEdges[id]; dup {
			return fmt.Errorf("%w: %d", ErrRepeatedEdge, id)
		}
		seenEdges[id] = struct{}{}

		e := in.Edges[id]
		if e.Capacity < f.Rate {
			return fmt.Errorf("%w: edge %d has %d, need %d", ErrCapacity, id, e.Capacity, f.Rate)
		}
		if prev != NoEdge && e.Excludes(prev) {
			return fmt.Errorf("%w: %d and %d", ErrExcludedPair, prev, id)
		}
		groupUse[e.Group]++
		prev = id
	}
	for gid, used := range groupUse {
		if g := in.Groups[gid]; g.Limit < used {
			return fmt.Errorf("%w: group %d has %d, path uses %d", ErrGroupQuota, gid, g.Limit, used)
		}
	}
	return nil
}
