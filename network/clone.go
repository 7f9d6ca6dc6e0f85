// SPDX-License-Identifier: MIT

package network

// Clone returns an Instance with its own copy of every counter (node limits,
// edge capacities, group quotas) and of the demand list. Topology (adjacency
// lists, exclusion sets, group membership) never changes after Build and is
// shared with in.
//
// Complexity: O(V + E + G + D)
func (in *Instance) Clone() *Instance {
	out := &Instance{
		Nodes:           make([]*Node, len(in.Nodes)),
		Edges:           make([]*Edge, len(in.Edges)),
		Groups:          make(map[int]*Group, len(in.Groups)),
		Demands:         append([]Demand(nil), in.Demands...),
		ConstraintCount: in.ConstraintCount,
	}
	for i, n := range in.Nodes {
		c := *n
		out.Nodes[i] = &c
	}
	for i, e := range in.Edges {
		c := *e
		out.Edges[i] = &c
	}
	for id, g := range in.Groups {
		c := *g
		out.Groups[id] = &c
	}
	return out
}

// Usage summarizes how far each counter has moved from a reference
// Instance with the same topology (typically a Clone taken before solving).
type Usage struct {
	// NodeVisits is reference Limit minus current Limit, per node id.
	NodeVisits []int

	// EdgeLoad is reference Capacity minus current Capacity, per edge id.
	EdgeLoad []int64

	// GroupUses is reference Limit minus current Limit, per group id.
	GroupUses map[int]int
}

// UsageSince reports counter deltas between ref and in.
func (in *Instance) UsageSince(ref *Instance) Usage {
	u := Usage{
		NodeVisits: make([]int, len(in.Nodes)),
		EdgeLoad:   make([]int64, len(in.Edges)),
		GroupUses:  make(map[int]int, len(in.Groups)),
	}
	for i, n := range in.Nodes {
		u.NodeVisits[i] = ref.Nodes[i].Limit - n.Limit
	}
	for i, e := range in.Edges {
		u.EdgeLoad[i] = ref.Edges[i].Capacity - e.Capacity
	}
	for id, g := range in.Groups {
		u.GroupUses[id] = ref.Groups[id].Limit - g.Limit
	}
	return u
}
