// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for instance construction.
var (
	// ErrNodeOutOfRange indicates a node id outside [0, node count).
	ErrNodeOutOfRange = errors.New("network: node id out of range")

	// ErrEdgeOutOfRange indicates an edge id outside [0, edge count).
	ErrEdgeOutOfRange = errors.New("network: edge id out of range")

	// ErrDuplicateEdge indicates an edge id was declared twice.
	ErrDuplicateEdge = errors.New("network: duplicate edge id")

	// ErrMissingEdge indicates the declared edge count was not filled.
	ErrMissingEdge = errors.New("network: edge declared in header but never defined")

	// ErrDuplicateDemand indicates a demand id was declared twice.
	ErrDuplicateDemand = errors.New("network: duplicate demand id")

	// ErrNegativeValue indicates a negative capacity, distance, rate or count.
	ErrNegativeValue = errors.New("network: negative value")

	// ErrSelfConstraint indicates an edge declared exclusive with itself.
	ErrSelfConstraint = errors.New("network: edge constrained with itself")

	// ErrCountTooLarge indicates a node or edge count above MaxCount.
	ErrCountTooLarge = errors.New("network: count too large")

	// ErrBuilt indicates a Builder was used after Build.
	ErrBuilt = errors.New("network: builder already built")
)

// Sentinel errors reported by CheckPath and Commit.
var (
	ErrEmptyPath     = errors.New("network: path has no edges")
	ErrUnknownEdge   = errors.New("network: path references unknown edge")
	ErrRepeatedEdge  = errors.New("network: path repeats an edge")
	ErrRepeatedNode  = errors.New("network: path revisits a node")
	ErrDisconnected  = errors.New("network: consecutive edges do not share a node")
	ErrWrongEnd      = errors.New("network: path does not end at the declared end node")
	ErrCapacity      = errors.New("network: edge capacity below flow rate")
	ErrGroupQuota    = errors.New("network: group quota exhausted")
	ErrNodeLimit     = errors.New("network: node flow limit exhausted")
	ErrExcludedPair  = errors.New("network: adjacent edges are mutually exclusive")
	ErrUnknownNodeID = errors.New("network: flow endpoint is not a node")
)

// Sentinel errors reported by Replay.
var (
	ErrUnknownDemand = errors.New("network: flow names no demand")
	ErrDuplicateFlow = errors.New("network: demand routed twice")
)

// NoEdge marks the absence of a previous edge (the first hop of a path).
const NoEdge = -1

// Initial counters of a freshly built instance.
const (
	DefaultNodeLimit  = 200
	DefaultGroupLimit = 100
)

// MaxCount bounds the node and edge counts a Builder accepts, so that ids
// fit an int on every platform.
const MaxCount = math.MaxInt32

// Adjacency lists every edge joining a node to one neighbor.
type Adjacency struct {
	// Node is the neighbor id.
	Node int

	// Edges holds the parallel edge ids joining both nodes.
	Edges []int
}

// Node is a vertex of the network.
type Node struct {
	// ID is the node index inside its Instance.
	ID int

	// Limit is the flow-limit counter: remaining occurrences of this node in
	// committed paths.
	Limit int

	// Endpoint is set when the node is the start or end of some demand.
	Endpoint bool

	adj   []Adjacency
	index map[int]int // neighbor id → position in adj
}

// Neighbors returns the adjacency list in its configured order.
// The slice is owned by the node and must not be modified.
func (n *Node) Neighbors() []Adjacency { return n.adj }

// EdgesTo returns the parallel edges joining n to neighbor v, or nil.
func (n *Node) EdgesTo(v int) []int {
	i, ok := n.index[v]
	if !ok {
		return nil
	}
	return n.adj[i].Edges
}

// Adjacent reports whether at least one edge joins n and v.
func (n *Node) Adjacent(v int) bool {
	_, ok := n.index[v]
	return ok
}

// Degree is the number of distinct neighbors.
func (n *Node) Degree() int { return len(n.adj) }

// Edge is an undirected, capacitated link between two nodes.
type Edge struct {
	ID       int
	Group    int
	A, B     int
	Distance int64

	// Capacity is the remaining capacity.
	Capacity int64

	excludes map[int]struct{}
}

// Other returns the endpoint opposite to node n. For an edge that does not
// touch n the result is A; callers walking a path check Joins first.
func (e *Edge) Other(n int) int {
	if n != e.A {
		return e.A
	}
	return e.B
}

// Joins reports whether n is one of the edge endpoints.
func (e *Edge) Joins(n int) bool { return n == e.A || n == e.B }

// Excludes reports whether the edge may not be adjacent to edge id in a path.
func (e *Edge) Excludes(id int) bool {
	_, ok := e.excludes[id]
	return ok
}

// Exclusions returns the ids of all edges exclusive with e, ascending.
func (e *Edge) Exclusions() []int {
	out := make([]int, 0, len(e.excludes))
	for id := range e.excludes {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Group is a set of edges sharing one usage quota.
type Group struct {
	ID    int
	Edges []int

	// Limit is the remaining quota; each committed use of a member edge costs 1.
	Limit int
}

// Demand is a request to route Rate units from Start to End.
type Demand struct {
	ID    int
	Start int
	End   int
	Rate  int64

	// Inverted records that the last search for this demand ran from End to
	// Start. Flows are always reported Start→End regardless.
	Inverted bool
}

// Flow is the committed result for one demand.
type Flow struct {
	// ID equals the demand id.
	ID int

	// Edges is the walk from Start to End.
	Edges []int

	Start int
	End   int
	Rate  int64

	// Inverted is set when the path was discovered from End to Start.
	Inverted bool
}

// NewFlow returns the Flow routing d along edges, oriented Start→End.
func NewFlow(d Demand, edges []int) Flow {
	return Flow{ID: d.ID, Edges: edges, Start: d.Start, End: d.End, Rate: d.Rate}
}

// Instance aggregates the whole problem. Topology is fixed after Build;
// only counters change, and only through Commit.
type Instance struct {
	Nodes   []*Node
	Edges   []*Edge
	Groups  map[int]*Group
	Demands []Demand

	// ConstraintCount is the number of constraint records read (metadata).
	ConstraintCount int
}

// NodeCount returns the number of nodes.
func (in *Instance) NodeCount() int { return len(in.Nodes) }

// EdgeCount returns the number of edges.
func (in *Instance) EdgeCount() int { return len(in.Edges) }

// HasNode reports whether id names a node.
func (in *Instance) HasNode(id int) bool { return id >= 0 && id < len(in.Nodes) }

// HasEdge reports whether id names an edge.
func (in *Instance) HasEdge(id int) bool { return id >= 0 && id < len(in.Edges) }

// Demand returns the demand with the given id.
func (in *Instance) Demand(id int) (Demand, bool) {
	for _, d := range in.Demands {
		if d.ID == id {
			return d, true
		}
	}
	return Demand{}, false
}

// GroupOf returns the group owning edge e.
func (in *Instance) GroupOf(e *Edge) *Group { return in.Groups[e.Group] }
