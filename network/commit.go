// SPDX-License-Identifier: MIT

package network

import "fmt"

// Commit allocates f: the start node's limit drops by one, then for every
// edge in path order its capacity drops by f.Rate, its group's quota by one
// and the node reached through it by one.
//
// f is re-validated with CheckPath first; an infeasible flow returns the
// validation error and leaves every counter untouched.
func (in *Instance) Commit(f Flow) error {
	if err := in.CheckPath(f); err != nil {
		return fmt.Errorf("network: commit flow %d: %w", f.ID, err)
	}

	node := in.Nodes[f.Start]
	node.Limit--
	for _, id := range f.Edges {
		e := in.Edges[id]
		e.Capacity -= f.Rate
		in.Groups[e.Group].Limit--
		node = in.Nodes[e.Other(node.ID)]
		node.Limit--
	}
	return nil
}

// Replay commits flows in order, as a solver would have. Only ID and Edges
// of each flow are read; endpoints and rate come from the matching demand.
// It stops at the first flow that names no demand, repeats a demand or fails
// Commit, and returns that error with the flow's position. Counters reflect
// every flow before the failing one.
func (in *Instance) Replay(flows []Flow) error {
	seen := make(map[int]struct{}, len(flows))
	for i, f := range flows {
		d, ok := in.Demand(f.ID)
		if !ok {
			return fmt.Errorf("network: replay #%d: %w: %d", i, ErrUnknownDemand, f.ID)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("network: replay #%d: %w: %d", i, ErrDuplicateFlow, f.ID)
		}
		seen[f.ID] = struct{}{}
		if err := in.Commit(NewFlow(d, f.Edges)); err != nil {
			return fmt.Errorf("network: replay #%d: %w", i, err)
		}
	}
	return nil
}
