// SPDX-License-Identifier: MIT

// Package generate builds synthetic network.Instance values for tests and
// benchmarks.
//
// Two topologies are offered:
//
//   - Random(n, p): every unordered node pair becomes an edge with
//     probability p.
//   - Grid(rows, cols): a 4-neighborhood lattice, node r*cols+c at (r, c).
//
// On top of the topology each generator draws, from one RNG and in a fixed
// order: parallel twins (WithParallel), per-edge group, distance and
// capacity (WithGroups, WithDistance, WithCapacity), exclusions between
// consecutive incident edges (WithExclusions) and demands with distinct
// endpoints (WithDemands, WithRate). The same seed and options always yield
// the same instance.
//
// Option constructors panic on meaningless arguments; generators return
// ErrTooFewNodes or ErrInvalidProbability, or wrap a network builder error.
package generate
