// SPDX-License-Identifier: MIT

package solver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AminosDz/routing-problem/logging"
	"github.com/AminosDz/routing-problem/network"
	"github.com/AminosDz/routing-problem/pathcache"
	"github.com/AminosDz/routing-problem/search"
)

var tracer = otel.Tracer("github.com/AminosDz/routing-problem/solver")

// pair is an ordered (start, end) node pair.
type pair struct{ start, end int }

// Solver routes the demands of one Instance, committing each found flow
// before the next demand is searched. A Solver owns its Instance's counters
// and is used once.
type Solver struct {
	in     *network.Instance
	opts   Options
	engine *search.Engine
	cache  *pathcache.Cache
	failed map[pair]int64 // smallest rate that found no path
	solved bool
}

// New prepares a Solver over in. Returns ErrInstanceNil or
// ErrOptionViolation.
func New(in *network.Instance, opts ...Option) (*Solver, error) {
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

	s := &Solver{in: in, opts: o, failed: make(map[pair]int64)}
	sopts := []search.Option{search.WithPolicy(o.Policy), search.WithFanOut(o.FanOut)}
	if o.Cache {
		s.cache = pathcache.New()
		sopts = append(sopts, search.WithCache(s.cache))
	}
	if o.Frontier {
		sopts = append(sopts, search.WithFrontier())
	}
	e, err := search.New(in, sopts...)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	s.engine = e
	return s, nil
}

// Options returns the solver configuration.
func (s *Solver) Options() Options { return s.opts }

// Schedule returns indices into the instance's demands in processing order.
func (s *Solver) Schedule() []int {
	idx := make([]int, len(s.in.Demands))
	for i := range idx {
		idx[i] = i
	}
	if s.opts.Order == AscendingRate {
		slices.SortStableFunc(idx, func(a, b int) int {
			return cmp.Compare(s.in.Demands[a].Rate, s.in.Demands[b].Rate)
		})
	}
	return idx
}

// Solve attempts every demand once, in schedule order, and returns the
// report. Failing demands are recorded as Unroutable and never abort the
// loop. Once the budget (or ctx) ends, the demand in flight and all later
// ones are Unroutable with ReasonTimeout. The only errors are ErrSolved and
// nil.
func (s *Solver) Solve(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.solved {
		return nil, ErrSolved
	}
	s.solved = true

	began := s.opts.StartedAt
	if began.IsZero() {
		began = time.Now()
	}
	if s.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, began.Add(s.opts.TimeLimit))
		defer cancel()
	}

	rep := &Report{RunID: uuid.New()}
	log := s.opts.Logger
	if log == nil {
		log = logging.FromContext(ctx)
	}
	log = log.With("run", rep.RunID.String())
	ctx = logging.WithLogger(ctx, log)

	ctx, span := tracer.Start(ctx, "solver.Solve", trace.WithAttributes(
		attribute.String("run_id", rep.RunID.String()),
		attribute.Int("demands", len(s.in.Demands)),
		attribute.String("policy", s.opts.Policy.Name()),
		attribute.String("order", s.opts.Order.String()),
	))
	defer span.End()

	log.Info("solve started",
		"nodes", s.in.NodeCount(),
		"edges", s.in.EdgeCount(),
		"demands", len(s.in.Demands),
		"policy", s.opts.Policy.Name(),
		"order", s.opts.Order.String(),
		"time_limit", s.opts.TimeLimit,
	)

	for _, i := range s.Schedule() {
		d := s.in.Demands[i]
		var o Outcome
		if rep.TimedOut || ctx.Err() != nil {
			rep.TimedOut = true
			o = Outcome{Demand: d, Status: Unroutable, Reason: ReasonTimeout}
		} else {
			o = s.route(ctx, d, rep)
			rep.TimedOut = o.Reason == ReasonTimeout
		}
		s.record(rep, o, log)
	}

	rep.Elapsed = time.Since(began)
	if s.cache != nil {
		rep.Cache = s.cache.Stats()
	}
	span.SetAttributes(
		attribute.Int("routed", rep.Routed),
		attribute.Int("unroutable", rep.Unroutable),
		attribute.Bool("timed_out", rep.TimedOut),
	)
	log.Info("solve finished",
		"routed", rep.Routed,
		"unroutable", rep.Unroutable,
		"timed_out", rep.TimedOut,
		"cache_entries", s.snapshot().Entries,
		"elapsed", rep.Elapsed,
	)
	return rep, nil
}

// record appends o to the report and publishes it.
func (s *Solver) record(rep *Report, o Outcome, log *slog.Logger) {
	rep.Outcomes = append(rep.Outcomes, o)
	if o.Status == Routed {
		rep.Routed++
	} else {
		rep.Unroutable++
	}
	s.opts.Metrics.observeOutcome(o)
	log.Debug("demand finished",
		"demand", o.Demand.ID,
		"status", o.Status.String(),
		"reason", o.Reason.String(),
		"hops", o.Hops,
		"how", o.How.String(),
		"inverted", o.Inverted,
	)
}

// route wraps attempt in a span and cache accounting.
func (s *Solver) route(ctx context.Context, d network.Demand, rep *Report) Outcome {
	ctx, span := tracer.Start(ctx, "solver.route", trace.WithAttributes(
		attribute.Int("demand", d.ID),
		attribute.Int("start", d.Start),
		attribute.Int("end", d.End),
		attribute.Int64("rate", d.Rate),
	))
	defer span.End()

	before := s.snapshot()
	o := s.attempt(ctx, d, rep)
	s.opts.Metrics.observeCache(before, s.snapshot())

	span.SetAttributes(
		attribute.String("status", o.Status.String()),
		attribute.String("reason", o.Reason.String()),
		attribute.Int("hops", o.Hops),
	)
	return o
}

// attempt searches, commits and caches one demand.
func (s *Solver) attempt(ctx context.Context, d network.Demand, rep *Report) Outcome {
	key := pair{d.Start, d.End}
	if s.opts.SkipKnownFailures {
		if rate, ok := s.failed[key]; ok && d.Rate >= rate {
			return Outcome{Demand: d, Status: Unroutable, Reason: ReasonKnownFailure}
		}
	}

	began := time.Now()
	res, err := s.engine.Find(ctx, d)
	s.opts.Metrics.observeSearch(time.Since(began).Seconds())
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Outcome{Demand: d, Status: Unroutable, Reason: ReasonTimeout}
	default:
		s.remember(key, d.Rate)
		return Outcome{Demand: d, Status: Unroutable, Reason: ReasonNoPath}
	}

	if err := s.in.Commit(res.Flow); err != nil {
		return Outcome{Demand: d, Status: Unroutable, Reason: ReasonInfeasible}
	}
	rep.Flows = append(rep.Flows, res.Flow)
	if s.cache != nil {
		log := logging.FromContext(ctx)
		if n, err := s.cache.Populate(s.in, res.Flow); err != nil {
			log.Debug("path cache not populated", "demand", d.ID, "err", err)
		} else {
			log.Debug("path cache populated", "demand", d.ID, "entries", n)
		}
	}

	d.Inverted = res.Flow.Inverted
	return Outcome{
		Demand:   d,
		Status:   Routed,
		Hops:     len(res.Flow.Edges),
		How:      res.How,
		Inverted: res.Flow.Inverted,
	}
}

func (s *Solver) remember(key pair, rate int64) {
	if !s.opts.SkipKnownFailures {
		return
	}
	if prev, ok := s.failed[key]; !ok || rate < prev {
		s.failed[key] = rate
	}
}

func (s *Solver) snapshot() cacheSnapshot {
	if s.cache == nil {
		return cacheSnapshot{}
	}
	st := s.cache.Stats()
	return cacheSnapshot{Hits: st.Hits, Misses: st.Misses, Entries: s.cache.Len()}
}
