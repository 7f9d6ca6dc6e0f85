// SPDX-License-Identifier: MIT

// Package solver routes every demand of a network.Instance greedily, one
// after the other, committing each found path before searching the next.
//
// What
//
//   - Demands are attempted once, in input order or by ascending rate
//     (WithOrder). A routed demand is never revisited.
//   - Each attempt runs a search.Engine, then network.Instance.Commit. A
//     path rejected by Commit leaves every counter untouched and the demand
//     Unroutable (ReasonInfeasible).
//   - After each commit the endpoint-anchored sub-paths of the flow are
//     stored in a pathcache.Cache (WithCache) that later searches splice.
//   - With WithSkipKnownFailures the solver remembers, per ordered
//     (start, end) pair, the smallest rate that found no path and skips
//     later demands on that pair at that rate or above.
//   - One wall-clock budget (WithTimeLimit, anchored by WithStartTime)
//     covers the whole loop. It is polled before each demand and on every
//     search dequeue.
//
// Report
//
//	Solve returns a Report with a run id, the committed flows in commit
//	order and one Outcome per demand. Routing nothing is a normal result.
//
// Observability
//
//	Records are logged through log/slog (WithLogger, or the logger carried
//	by the context), counted in Prometheus collectors (NewMetrics,
//	WithMetrics) and traced with OpenTelemetry spans "solver.Solve" and
//	"solver.route" on the global tracer provider.
//
// Concurrency
//
//	A Solver is single-owner: each commit changes what the next search may
//	use, so demands are never searched in parallel.
package solver
