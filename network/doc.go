// SPDX-License-Identifier: MIT

// Package network holds the resource model that every other package of
// routing-problem works against: nodes with a flow-limit counter, undirected
// edges with a remaining capacity and a symmetric exclusion set, edge groups
// with a shared quota, and the demands to route over them.
//
// What
//
//   - Node, Edge, Group, Demand and Flow value types, held in an Instance
//     arena and referenced by integer id (never by pointer across entities).
//   - Builder: constructs an Instance once, rejecting malformed input
//     (ids out of range, duplicate edge or demand ids, negative capacities,
//     rates or distances, constraints on unknown edges) before any counter
//     exists.
//   - CheckPath: re-validates a candidate Flow against the present counters.
//   - Commit: the allocator. Validates, then decrements node limits, edge
//     capacities and group quotas along the flow, all or nothing.
//
// Counters
//
//	Node.Limit   remaining times the node may occur in a committed path
//	Edge.Capacity remaining capacity; usable while Capacity >= rate
//	Group.Limit  remaining uses of any member edge
//
// All three are monotonically non-increasing and only Commit changes them.
//
// Adjacency
//
//	Each node keeps its neighbors in a deterministic order (first appearance by
//	edge id, or descending neighbor degree with WithNeighborOrder) and, per
//	neighbor, the ids of every parallel edge (ascending id, or the order given
//	by WithEdgeOrder).
//
// Concurrency
//
//	An Instance is single-owner: Commit mutates it without locking. Readers
//	running concurrently with a committer must work on a Clone.
//
// Complexity (V = nodes, E = edges, C = constraint pairs, L = path length)
//
//   - Build:     O(V + E log E + C)
//   - CheckPath: O(L)
//   - Commit:    O(L)
package network
