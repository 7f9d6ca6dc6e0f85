// SPDX-License-Identifier: MIT

// Package search finds a feasible path for one demand on a network.Instance
// under its current counters.
//
// What
//
//   - Breadth-first search over nodes whose flow limit is still positive.
//   - Each queue item remembers the edge it was reached through, so the next
//     edge is chosen among parallel candidates with the previous one known:
//     an edge is admissible when it is not exclusive with the previous edge,
//     its group quota is positive and its capacity covers the rate.
//   - Among admissible parallel edges a policy.Policy picks one.
//   - Optional accelerators, all validated with Instance.CheckPath before
//     being returned:
//   - a sub-path cache (WithCache) spliced at every dequeue,
//   - a 2-level destination frontier (WithFrontier) that closes the path
//     with one or two hops, and picks the search direction by frontier size,
//   - a fan-out cap (WithFanOut) bounding the neighbors examined per node.
//
// Orientation
//
//	A Result's Flow always runs from the demand's Start to its End. When the
//	frontier reversed the search, Flow.Inverted is set and the edges have
//	already been reversed back; the demand itself is never modified.
//
// Guarantees
//
//	A path found by plain exploration never repeats a node, never visits an
//	exhausted node and never puts two mutually exclusive edges next to each
//	other. Group quotas are only checked per edge during exploration: a path
//	that uses one group more often than its quota allows is caught by
//	Instance.Commit. Spliced and shortcut paths are fully checked.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E) per search without accelerators
//   - Memory: O(V)
//
// Cancellation
//
//	The context is polled once per dequeue; a cancelled or expired context
//	aborts the search with ctx.Err().
package search
