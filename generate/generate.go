// SPDX-License-Identifier: MIT

package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/AminosDz/routing-problem/network"
)

// Sentinel errors for generators.
var (
	// ErrTooFewNodes indicates a size parameter below the generator minimum.
	ErrTooFewNodes = errors.New("generate: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("generate: probability out of range")
)

const (
	methodRandom = "Random"
	methodGrid   = "Grid"
	minNodes     = 1
	minDemandSet = 2 // nodes needed to draw a demand with distinct endpoints
)

// link is one sampled edge before ids are final.
type link struct{ a, b int }

// Random samples an Erdős–Rényi-like network over n nodes: each unordered pair
// {i, j} becomes an edge with probability p. Trials run i asc, j asc, so the
// outcome is fixed for a fixed seed.
func Random(n int, p float64, opts ...Option) (*network.Instance, error) {
	if n < minNodes {
		return nil, fmt.Errorf("%s: n=%d < %d: %w", methodRandom, n, minNodes, ErrTooFewNodes)
	}
	if p < probabilityLow || p > probabilityHigh {
		return nil, fmt.Errorf("%s: p=%.6f: %w", methodRandom, p, ErrInvalidProbability)
	}
	cfg := newConfig(opts...)

	var links []link
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cfg.rng.Float64() < p {
				links = append(links, link{i, j})
			}
		}
	}
	return assemble(methodRandom, n, links, cfg)
}

// Grid builds a rows×cols 4-neighborhood grid. Node r*cols+c sits at (r, c);
// each cell links to its right then its bottom neighbor.
func Grid(rows, cols int, opts ...Option) (*network.Instance, error) {
	if rows < minNodes || cols < minNodes {
		return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be >= %d): %w",
			methodGrid, rows, cols, minNodes, ErrTooFewNodes)
	}
	cfg := newConfig(opts...)

	var links []link
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				links = append(links, link{u, u + 1})
			}
			if r+1 < rows {
				links = append(links, link{u, u + cols})
			}
		}
	}
	return assemble(methodGrid, rows*cols, links, cfg)
}

// between draws uniformly from [lo, hi].
func between(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

// assemble turns sampled links into an Instance: parallel twins, attributes,
// exclusions and demands are drawn here, in that order.
func assemble(method string, n int, links []link, cfg config) (*network.Instance, error) {
	if cfg.demands > 0 && n < minDemandSet {
		return nil, fmt.Errorf("%s: %d demands need n >= %d, have %d: %w",
			method, cfg.demands, minDemandSet, n, ErrTooFewNodes)
	}
	rng := cfg.rng

	edges := make([]link, 0, len(links))
	for _, l := range links {
		edges = append(edges, l)
		if cfg.parallel > 0 && rng.Float64() < cfg.parallel {
			edges = append(edges, l)
		}
	}

	b := network.NewBuilder(n, len(edges), cfg.networkOptions...)
	incident := make([][]int, n)
	for id, l := range edges {
		group := rng.Intn(cfg.groups)
		dist := between(rng, cfg.distMin, cfg.distMax)
		capacity := between(rng, cfg.capMin, cfg.capMax)
		if err := b.AddEdge(id, group, l.a, l.b, dist, capacity); err != nil {
			return nil, fmt.Errorf("%s: AddEdge(%d): %w", method, id, err)
		}
		incident[l.a] = append(incident[l.a], id)
		incident[l.b] = append(incident[l.b], id)
	}

	if cfg.exclusion > 0 {
		for node, ids := range incident {
			for k := 0; k+1 < len(ids); k++ {
				if rng.Float64() >= cfg.exclusion {
					continue
				}
				if err := b.AddConstraint(node, ids[k], ids[k+1]); err != nil {
					return nil, fmt.Errorf("%s: AddConstraint(%d): %w", method, node, err)
				}
			}
		}
	}

	for id := 0; id < cfg.demands; id++ {
		start := rng.Intn(n)
		end := rng.Intn(n - 1)
		if end >= start {
			end++
		}
		if err := b.AddDemand(id, start, end, between(rng, cfg.rateMin, cfg.rateMax)); err != nil {
			return nil, fmt.Errorf("%s: AddDemand(%d): %w", method, id, err)
		}
	}

	in, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return in, nil
}
