// Package routing routes a batch of point-to-point flow demands over a
// capacitated network, greedily and under a wall-clock budget.
//
// What is in the module?
//
//	A best-effort allocator that commits one feasible path per demand, in
//	order, without backtracking:
//		• network/    Instance model: nodes, edges, groups, demands, flows,
//		              path checks and the all-or-nothing Commit
//		• policy/     edge admissibility and the FirstFit / MinDistance /
//		              MaxCapacity selection policies
//		• search/     constrained BFS with fan-out cap, 2-level frontier
//		              shortcut and path-cache splicing
//		• pathcache/  unordered-pair memo of committed sub-paths
//		• solver/     the sequential loop: ordering, budget, known failures,
//		              report, logs, metrics and traces
//		• instanceio/ whitespace text instances and flow lists
//		• config/     YAML solver configuration
//		• logging/    slog construction and context carriage
//		• generate/   seeded random and grid instances for tests and benchmarks
//
// Constraints honored by every committed flow:
//
//   - capacity: each edge keeps at least the flow's rate
//   - group quota: each use of an edge spends one unit of its group
//   - node limit: each visited node spends one unit, endpoints included
//   - exclusions: two excluded edges are never consecutive
//
// Quick start:
//
//	in, err := instanceio.Read(f)
//	sv, err := solver.New(in, solver.WithPolicy(policy.MinDistance))
//	rep, err := sv.Solve(ctx)
//	err = instanceio.WriteFlows(os.Stdout, rep.Flows)
//
// The flowroute command (cmd/flowroute) wraps the same steps with
// configuration files, flag overrides and a validate subcommand.
package routing
