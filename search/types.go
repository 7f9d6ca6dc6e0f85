// SPDX-License-Identifier: MIT

package search

import (
	"errors"
	"fmt"

	"github.com/AminosDz/routing-problem/network"
	"github.com/AminosDz/routing-problem/policy"
)

// Sentinel errors for path search.
var (
	// ErrNoPath is returned when the queue empties without reaching the end
	// node (or an endpoint is already exhausted).
	ErrNoPath = errors.New("search: no feasible path")

	// ErrInstanceNil is returned by New for a nil instance.
	ErrInstanceNil = errors.New("search: instance is nil")

	// ErrUnknownEndpoint is returned when a demand names a node outside the instance.
	ErrUnknownEndpoint = errors.New("search: demand endpoint not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// SubPaths is the read side of a path memo (see pathcache.Cache).
type SubPaths interface {
	// Get returns a walk from node from to node to.
	Get(from, to int) ([]int, bool)
}

// Option configures an Engine.
type Option func(*Options)

// Options holds the tunables of an Engine. They are fixed for the Engine's
// lifetime.
type Options struct {
	// Policy selects among parallel edges.
	Policy policy.Policy

	// FanOut caps how many adjacency entries of a dequeued node are
	// examined (0 = all). Trades completeness for bounded work.
	FanOut int

	// Cache, when set, is consulted at every dequeue for a walk from the
	// dequeued node to the destination.
	Cache SubPaths

	// Frontier enables the 2-level destination shortcut and direction
	// choice by frontier size.
	Frontier bool

	// OnDequeue is called for every node taken from the queue.
	OnDequeue func(node, depth int)

	err error
}

// DefaultOptions returns FirstFit, unbounded fan-out, no cache, no frontier.
func DefaultOptions() Options {
	return Options{
		Policy:    policy.FirstFit,
		OnDequeue: func(int, int) {},
	}
}

// WithPolicy sets the edge selection policy.
func WithPolicy(p policy.Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithFanOut caps the adjacency entries examined per dequeued node.
//
//	k > 0: examine the first k neighbors
//	k == 0: no cap
//	k < 0: invalid option → ErrOptionViolation
func WithFanOut(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: FanOut cannot be negative (%d)", ErrOptionViolation, k)
			return
		}
		o.FanOut = k
	}
}

// WithCache enables sub-path splicing from c.
func WithCache(c SubPaths) Option {
	return func(o *Options) {
		if c != nil {
			o.Cache = c
		}
	}
}

// WithFrontier enables the 2-level frontier shortcut.
func WithFrontier() Option {
	return func(o *Options) { o.Frontier = true }
}

// WithOnDequeue registers a callback run on every dequeue.
func WithOnDequeue(fn func(node, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// How tells which mechanism produced a Result.
type How int

const (
	// Explored means the destination was dequeued by plain BFS.
	Explored How = iota

	// Spliced means a cached sub-path completed the walk.
	Spliced

	// Shortcut means a 1- or 2-hop frontier tail completed the walk.
	Shortcut
)

func (h How) String() string {
	switch h {
	case Spliced:
		return "spliced"
	case Shortcut:
		return "shortcut"
	}
	return "explored"
}

// Result is a found path for one demand.
type Result struct {
	// Flow is oriented Start→End of the demand, whatever the search direction.
	Flow network.Flow

	// How tells which mechanism completed the path.
	How How

	// Expanded counts dequeued nodes.
	Expanded int

	// Stale counts cached candidates rejected by re-validation.
	Stale int
}
