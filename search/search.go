// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"slices"

	"github.com/AminosDz/routing-problem/network"
)

// Engine finds feasible paths on one Instance with a fixed set of Options.
// It reads counters but never mutates them.
type Engine struct {
	in       *network.Instance
	opts     Options
	frontier *FrontierIndex
}

// New returns an Engine over in. Returns ErrInstanceNil or
// ErrOptionViolation.
func New(in *network.Instance, opts ...Option) (*Engine, error) {
	if in == nil {
		return nil, ErrInstanceNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	e := &Engine{in: in, opts: o}
	if o.Frontier {
		e.frontier = NewFrontierIndex(in)
	}
	return e, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// Frontier returns the frontier index, or nil when disabled.
func (e *Engine) Frontier() *FrontierIndex { return e.frontier }

// queueItem is one BFS tree node: the graph node reached, its depth, the
// edge it was reached through and the index of its parent item.
type queueItem struct {
	node   int
	depth  int
	via    int // network.NoEdge for the root
	parent int // -1 for the root
}

// walker encapsulates the mutable state of one search.
type walker struct {
	in   *network.Instance
	opts Options
	ctx  context.Context

	src, dst int
	rate     int64
	tail     *Levels // destination frontier, nil when disabled

	items   []queueItem // every enqueued item; items[head:] is the queue
	head    int
	visited []bool
	res     Result
}

// Find searches a path for d under the present counters.
//
// The search is a BFS from the start node (or from the end node, when the
// frontier is enabled and the start side is larger) that carries, per queue
// item, the edge used to reach it. Nodes whose limit is exhausted are never
// enqueued; among parallel edges at most one, chosen by the policy, extends
// the path. At every dequeue the engine tries, in order: arrival, a cached
// tail (re-validated), a 1- or 2-hop frontier tail (validated), and then
// expands neighbors.
//
// Returns ErrNoPath when the queue empties, ctx.Err() when the context ends
// mid-search (polled once per dequeue) and ErrUnknownEndpoint for ids
// outside the instance. Result counters are filled even on failure.
func (e *Engine) Find(ctx context.Context, d network.Demand) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !e.in.HasNode(d.Start) || !e.in.HasNode(d.End) {
		return Result{}, fmt.Errorf("%w: demand %d (%d→%d)", ErrUnknownEndpoint, d.ID, d.Start, d.End)
	}
	if d.Start == d.End {
		return Result{}, fmt.Errorf("%w: demand %d starts and ends at %d", ErrNoPath, d.ID, d.Start)
	}
	if e.in.Nodes[d.Start].Limit <= 0 || e.in.Nodes[d.End].Limit <= 0 {
		return Result{}, fmt.Errorf("%w: demand %d endpoint exhausted", ErrNoPath, d.ID)
	}

	w := &walker{
		in:      e.in,
		opts:    e.opts,
		ctx:     ctx,
		src:     d.Start,
		dst:     d.End,
		rate:    d.Rate,
		visited: make([]bool, len(e.in.Nodes)),
	}
	inverted := false
	if e.frontier != nil {
		ls, le := e.frontier.Levels(d.Start), e.frontier.Levels(d.End)
		w.tail = le
		if ls.Size() > le.Size() {
			w.src, w.dst = d.End, d.Start
			w.tail = ls
			inverted = true
		}
	}

	edges, err := w.run()
	if err != nil {
		return w.res, err
	}
	if inverted {
		slices.Reverse(edges)
	}
	w.res.Flow = network.NewFlow(d, edges)
	w.res.Flow.Inverted = inverted
	return w.res, nil
}

// run processes the queue until arrival, exhaustion or cancellation.
func (w *walker) run() ([]int, error) {
	w.push(w.src, 0, network.NoEdge, -1)
	for w.head < len(w.items) {
		if err := w.ctx.Err(); err != nil {
			return nil, err
		}

		at := w.head
		item := w.items[at]
		w.head++
		w.res.Expanded++
		w.opts.OnDequeue(item.node, item.depth)

		if item.node == w.dst {
			w.res.How = Explored
			return w.pathTo(at), nil
		}
		if path, ok := w.splice(at); ok {
			w.res.How = Spliced
			return path, nil
		}
		if path, ok := w.shortcut(at); ok {
			w.res.How = Shortcut
			return path, nil
		}
		w.expand(at)
	}
	return nil, ErrNoPath
}

// push enqueues node, marking it visited.
func (w *walker) push(node, depth, via, parent int) {
	w.visited[node] = true
	w.items = append(w.items, queueItem{node: node, depth: depth, via: via, parent: parent})
}

// pathTo rebuilds the edge sequence from the root to items[at].
func (w *walker) pathTo(at int) []int {
	path := make([]int, 0, w.items[at].depth+2)
	for i := at; w.items[i].parent >= 0; i = w.items[i].parent {
		path = append(path, w.items[i].via)
	}
	slices.Reverse(path)
	return path
}

// feasible validates a complete candidate walk from src to dst.
func (w *walker) feasible(edges []int) bool {
	return w.in.CheckPath(network.Flow{Start: w.src, End: w.dst, Rate: w.rate, Edges: edges}) == nil
}

// splice completes the path with a cached walk from items[at] to dst.
func (w *walker) splice(at int) ([]int, bool) {
	if w.opts.Cache == nil {
		return nil, false
	}
	sub, ok := w.opts.Cache.Get(w.items[at].node, w.dst)
	if !ok {
		return nil, false
	}
	candidate := append(w.pathTo(at), sub...)
	if !w.feasible(candidate) {
		w.res.Stale++
		return nil, false
	}
	return candidate, true
}

// shortcut completes the path with one or two hops into dst when items[at]
// lies in the destination frontier.
func (w *walker) shortcut(at int) ([]int, bool) {
	if w.tail == nil {
		return nil, false
	}
	item := w.items[at]
	from := w.in.Nodes[item.node]

	if w.tail.Adjacent(item.node) {
		if last, ok := w.opts.Policy.Choose(w.in, from.EdgesTo(w.dst), item.via, w.rate); ok {
			candidate := append(w.pathTo(at), last)
			if w.feasible(candidate) {
				return candidate, true
			}
		}
	}

	for _, relay := range w.tail.Two[item.node] {
		if w.visited[relay] || w.in.Nodes[relay].Limit <= 0 {
			continue
		}
		first, ok := w.opts.Policy.Choose(w.in, from.EdgesTo(relay), item.via, w.rate)
		if !ok {
			continue
		}
		last, ok := w.opts.Policy.Choose(w.in, w.in.Nodes[relay].EdgesTo(w.dst), first, w.rate)
		if !ok {
			continue
		}
		candidate := append(w.pathTo(at), first, last)
		if w.feasible(candidate) {
			return candidate, true
		}
	}
	return nil, false
}

// expand enqueues every unvisited, non-exhausted neighbor of items[at] that
// an admissible edge reaches, up to the fan-out cap.
func (w *walker) expand(at int) {
	item := w.items[at]
	nbrs := w.in.Nodes[item.node].Neighbors()
	if w.opts.FanOut > 0 && len(nbrs) > w.opts.FanOut {
		nbrs = nbrs[:w.opts.FanOut]
	}
	for _, a := range nbrs {
		if w.visited[a.Node] || w.in.Nodes[a.Node].Limit <= 0 {
			continue
		}
		edge, ok := w.opts.Policy.Choose(w.in, a.Edges, item.via, w.rate)
		if !ok {
			continue
		}
		w.push(a.Node, item.depth+1, edge, at)
	}
}
