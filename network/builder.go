// SPDX-License-Identifier: MIT

package network

import (
	"cmp"
	"fmt"
	"slices"
)

// NeighborOrder selects how each node orders its adjacency list.
type NeighborOrder int

const (
	// FirstSeen keeps neighbors in order of first appearance by edge id.
	FirstSeen NeighborOrder = iota

	// ByDegree puts high-degree neighbors first (ties by ascending id), so
	// that a capped fan-out explores hubs before leaves.
	ByDegree
)

// Option configures a Builder.
type Option func(*buildConfig)

type buildConfig struct {
	nodeLimit  int
	groupLimit int
	neighbors  NeighborOrder
	edgeOrder  func(a, b *Edge) int
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		nodeLimit:  DefaultNodeLimit,
		groupLimit: DefaultGroupLimit,
		neighbors:  FirstSeen,
	}
}

// WithNodeLimit sets the initial flow-limit counter of every node.
// Panics on a negative limit.
func WithNodeLimit(limit int) Option {
	if limit < 0 {
		panic("network: WithNodeLimit(<0)")
	}
	return func(c *buildConfig) { c.nodeLimit = limit }
}

// WithGroupLimit sets the initial quota of every group.
// Panics on a negative limit.
func WithGroupLimit(limit int) Option {
	if limit < 0 {
		panic("network: WithGroupLimit(<0)")
	}
	return func(c *buildConfig) { c.groupLimit = limit }
}

// WithNeighborOrder selects the adjacency order.
func WithNeighborOrder(o NeighborOrder) Option {
	return func(c *buildConfig) { c.neighbors = o }
}

// WithEdgeOrder sorts every parallel-edge list with cmp (stable, ties by id).
// A nil cmp keeps ascending edge ids.
func WithEdgeOrder(cmp func(a, b *Edge) int) Option {
	return func(c *buildConfig) { c.edgeOrder = cmp }
}

// Builder assembles an Instance record by record. The first failing call
// poisons the builder: later calls and Build return the same error.
type Builder struct {
	cfg         buildConfig
	nodeCount   int
	edgeCount   int
	edges       map[int]*Edge
	groups      map[int]*Group
	constraints [][2]int
	demands     []Demand
	demandIDs   map[int]struct{}
	err         error
	built       bool
}

// NewBuilder prepares a builder for nodeCount nodes and edgeCount edges.
// Counts above MaxCount poison the builder with ErrCountTooLarge. Edges are
// held by id until Build, so memory follows the declared records rather
// than the header.
func NewBuilder(nodeCount, edgeCount int, opts ...Option) *Builder {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &Builder{
		cfg:       cfg,
		nodeCount: nodeCount,
		edgeCount: edgeCount,
		edges:     make(map[int]*Edge),
		groups:    make(map[int]*Group),
		demandIDs: make(map[int]struct{}),
	}
	if nodeCount < 0 || edgeCount < 0 {
		b.err = fmt.Errorf("%w: header counts nodes=%d edges=%d", ErrNegativeValue, nodeCount, edgeCount)
		return b
	}
	if nodeCount > MaxCount || edgeCount > MaxCount {
		b.err = fmt.Errorf("%w: header counts nodes=%d edges=%d", ErrCountTooLarge, nodeCount, edgeCount)
	}
	return b
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return b.err
}

func (b *Builder) usable() error {
	if b.built {
		return ErrBuilt
	}
	return b.err
}

func (b *Builder) checkNode(id int) error {
	if id < 0 || id >= b.nodeCount {
		return fmt.Errorf("%w: %d (nodes=%d)", ErrNodeOutOfRange, id, b.nodeCount)
	}
	return nil
}

func (b *Builder) checkEdge(id int) error {
	if id < 0 || id >= b.edgeCount {
		return fmt.Errorf("%w: %d (edges=%d)", ErrEdgeOutOfRange, id, b.edgeCount)
	}
	return nil
}

// AddEdge declares edge id in group, joining nodes a and c.
// The group is created on first reference.
func (b *Builder) AddEdge(id, group, a, c int, distance, capacity int64) error {
	if err := b.usable(); err != nil {
		return err
	}
	if err := b.checkEdge(id); err != nil {
		return b.fail(err)
	}
	if _, dup := b.edges[id]; dup {
		return b.fail(fmt.Errorf("%w: %d", ErrDuplicateEdge, id))
	}
	if err := b.checkNode(a); err != nil {
		return b.fail(fmt.Errorf("edge %d: %w", id, err))
	}
	if err := b.checkNode(c); err != nil {
		return b.fail(fmt.Errorf("edge %d: %w", id, err))
	}
	if distance < 0 || capacity < 0 || group < 0 {
		return b.fail(fmt.Errorf("%w: edge %d group=%d distance=%d capacity=%d",
			ErrNegativeValue, id, group, distance, capacity))
	}

	b.edges[id] = &Edge{
		ID:       id,
		Group:    group,
		A:        a,
		B:        c,
		Distance: distance,
		Capacity: capacity,
		excludes: make(map[int]struct{}),
	}
	g, ok := b.groups[group]
	if !ok {
		g = &Group{ID: group, Limit: b.cfg.groupLimit}
		b.groups[group] = g
	}
	g.Edges = append(g.Edges, id)
	return nil
}

// AddConstraint declares edges e1 and e2 mutually exclusive. anchor is the
// node the pair was reported at; it is validated but otherwise unused.
// Both edges must be declared by Build time.
func (b *Builder) AddConstraint(anchor, e1, e2 int) error {
	if err := b.usable(); err != nil {
		return err
	}
	if err := b.checkNode(anchor); err != nil {
		return b.fail(fmt.Errorf("constraint anchor: %w", err))
	}
	if err := b.checkEdge(e1); err != nil {
		return b.fail(fmt.Errorf("constraint: %w", err))
	}
	if err := b.checkEdge(e2); err != nil {
		return b.fail(fmt.Errorf("constraint: %w", err))
	}
	if e1 == e2 {
		return b.fail(fmt.Errorf("%w: %d", ErrSelfConstraint, e1))
	}
	b.constraints = append(b.constraints, [2]int{e1, e2})
	return nil
}

// AddDemand declares a demand and marks both endpoints.
func (b *Builder) AddDemand(id, start, end int, rate int64) error {
	if err := b.usable(); err != nil {
		return err
	}
	if _, dup := b.demandIDs[id]; dup {
		return b.fail(fmt.Errorf("%w: %d", ErrDuplicateDemand, id))
	}
	if err := b.checkNode(start); err != nil {
		return b.fail(fmt.Errorf("demand %d start: %w", id, err))
	}
	if err := b.checkNode(end); err != nil {
		return b.fail(fmt.Errorf("demand %d end: %w", id, err))
	}
	if rate < 0 {
		return b.fail(fmt.Errorf("%w: demand %d rate=%d", ErrNegativeValue, id, rate))
	}
	b.demandIDs[id] = struct{}{}
	b.demands = append(b.demands, Demand{ID: id, Start: start, End: end, Rate: rate})
	return nil
}

// Build validates completeness and returns the Instance. The builder cannot
// be reused afterwards.
func (b *Builder) Build() (*Instance, error) {
	if err := b.usable(); err != nil {
		return nil, err
	}
	if len(b.edges) < b.edgeCount {
		id := 0
		for b.edges[id] != nil {
			id++
		}
		return nil, b.fail(fmt.Errorf("%w: %d", ErrMissingEdge, id))
	}
	b.built = true

	in := &Instance{
		Nodes:           make([]*Node, b.nodeCount),
		Edges:           make([]*Edge, b.edgeCount),
		Groups:          b.groups,
		Demands:         b.demands,
		ConstraintCount: len(b.constraints),
	}
	for id, e := range b.edges {
		in.Edges[id] = e
	}
	for i := range in.Nodes {
		in.Nodes[i] = &Node{ID: i, Limit: b.cfg.nodeLimit, index: make(map[int]int)}
	}

	// Exclusion is symmetric by construction.
	for _, c := range b.constraints {
		in.Edges[c[0]].excludes[c[1]] = struct{}{}
		in.Edges[c[1]].excludes[c[0]] = struct{}{}
	}

	// Self-loops can never lie on a simple path; they stay in Edges and in
	// their group but are not linked into adjacency.
	for _, e := range in.Edges {
		if e.A == e.B {
			continue
		}
		in.Nodes[e.A].link(e.B, e.ID)
		in.Nodes[e.B].link(e.A, e.ID)
	}

	for _, d := range in.Demands {
		in.Nodes[d.Start].Endpoint = true
		in.Nodes[d.End].Endpoint = true
	}

	for _, n := range in.Nodes {
		b.order(in, n)
	}
	return in, nil
}

func (n *Node) link(v, edge int) {
	if i, ok := n.index[v]; ok {
		n.adj[i].Edges = append(n.adj[i].Edges, edge)
		return
	}
	n.index[v] = len(n.adj)
	n.adj = append(n.adj, Adjacency{Node: v, Edges: []int{edge}})
}

// order applies the configured neighbor and parallel-edge ordering to n.
func (b *Builder) order(in *Instance, n *Node) {
	if b.cfg.edgeOrder != nil {
		for i := range n.adj {
			slices.SortStableFunc(n.adj[i].Edges, func(x, y int) int {
				if c := b.cfg.edgeOrder(in.Edges[x], in.Edges[y]); c != 0 {
					return c
				}
				return cmp.Compare(x, y)
			})
		}
	}
	if b.cfg.neighbors == ByDegree {
		slices.SortStableFunc(n.adj, func(x, y Adjacency) int {
			dx, dy := in.Nodes[x.Node].Degree(), in.Nodes[y.Node].Degree()
			if dx != dy {
				return cmp.Compare(dy, dx)
			}
			return cmp.Compare(x.Node, y.Node)
		})
		for i, a := range n.adj {
			n.index[a.Node] = i
		}
	}
}
