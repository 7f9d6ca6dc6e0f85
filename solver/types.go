// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminosDz/routing-problem/network"
	"github.com/AminosDz/routing-problem/pathcache"
	"github.com/AminosDz/routing-problem/policy"
	"github.com/AminosDz/routing-problem/search"
)

// Sentinel errors for the solver.
var (
	// ErrInstanceNil is returned by New for a nil instance.
	ErrInstanceNil = errors.New("solver: instance is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")

	// ErrSolved is returned by a second Solve on the same Solver.
	ErrSolved = errors.New("solver: instance already solved")

	// ErrUnknownOrder is returned by ParseOrder for an unrecognized name.
	ErrUnknownOrder = errors.New("solver: unknown demand order")
)

// DefaultTimeLimit is the wall-clock budget of a solve.
const DefaultTimeLimit = 1900 * time.Millisecond

// Order fixes the sequence in which demands are attempted.
type Order int

const (
	// InputOrder attempts demands as they were declared.
	InputOrder Order = iota

	// AscendingRate attempts smaller demands first (stable on input order).
	AscendingRate
)

// ParseOrder maps "input" and "ascending_rate" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "input":
		return InputOrder, nil
	case "ascending_rate", "ascending", "rate":
		return AscendingRate, nil
	}
	return InputOrder, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

func (o Order) String() string {
	if o == AscendingRate {
		return "ascending_rate"
	}
	return "input"
}

// Status is the lifecycle state of a demand.
type Status int

const (
	Pending Status = iota
	Routed
	Unroutable
)

func (s Status) String() string {
	switch s {
	case Routed:
		return "routed"
	case Unroutable:
		return "unroutable"
	}
	return "pending"
}

// Reason explains an Unroutable status.
type Reason int

const (
	// ReasonNone accompanies Routed.
	ReasonNone Reason = iota

	// ReasonNoPath means the search exhausted its queue.
	ReasonNoPath

	// ReasonTimeout means the time budget ran out before or during the search.
	ReasonTimeout

	// ReasonKnownFailure means the same pair already failed at a rate no
	// larger than this one.
	ReasonKnownFailure

	// ReasonInfeasible means the found path was rejected at commit
	// (a group used more often than its quota allows).
	ReasonInfeasible
)

func (r Reason) String() string {
	switch r {
	case ReasonNoPath:
		return "no_path"
	case ReasonTimeout:
		return "timeout"
	case ReasonKnownFailure:
		return "known_failure"
	case ReasonInfeasible:
		return "infeasible"
	}
	return "none"
}

// Outcome is the final state of one demand.
type Outcome struct {
	Demand network.Demand
	Status Status
	Reason Reason

	// Set when Routed.
	Hops     int
	How      search.How
	Inverted bool
}

// Report summarizes a solve. Zero routed flows is a valid report.
type Report struct {
	RunID uuid.UUID

	// Flows holds committed flows in commit order.
	Flows []network.Flow

	// Outcomes holds one entry per demand, in processing order.
	Outcomes []Outcome

	Routed     int
	Unroutable int
	Elapsed    time.Duration
	TimedOut   bool

	// Cache reports path cache lookups (zero when the cache is disabled).
	Cache pathcache.Stats
}

// Outcome returns the outcome of demand id.
func (r *Report) Outcome(id int) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Demand.ID == id {
			return o, true
		}
	}
	return Outcome{}, false
}

// Option configures a Solver.
type Option func(*Options)

// Options holds the tunables of a Solver.
type Options struct {
	Policy            policy.Policy
	Order             Order
	TimeLimit         time.Duration // 0 = unbounded
	FanOut            int           // 0 = unbounded
	Cache             bool
	Frontier          bool
	SkipKnownFailures bool

	// StartedAt anchors the time budget; zero means when Solve is called.
	StartedAt time.Time

	Logger  *slog.Logger
	Metrics *Metrics

	err error
}

// DefaultOptions returns FirstFit, input order, DefaultTimeLimit and the
// path cache enabled.
func DefaultOptions() Options {
	return Options{
		Policy:    policy.FirstFit,
		Order:     InputOrder,
		TimeLimit: DefaultTimeLimit,
		Cache:     true,
	}
}

// WithPolicy sets the edge selection policy.
func WithPolicy(p policy.Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithOrder sets the demand processing order.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		if ord != InputOrder && ord != AscendingRate {
			o.err = fmt.Errorf("%w: order %d", ErrOptionViolation, ord)
			return
		}
		o.Order = ord
	}
}

// WithTimeLimit sets the wall-clock budget; 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: TimeLimit cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.TimeLimit = d
	}
}

// WithStartTime anchors the budget at t instead of at Solve, so time spent
// reading input counts against it.
func WithStartTime(t time.Time) Option {
	return func(o *Options) { o.StartedAt = t }
}

// WithFanOut caps neighbors examined per dequeued node; 0 means all.
func WithFanOut(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: FanOut cannot be negative (%d)", ErrOptionViolation, k)
			return
		}
		o.FanOut = k
	}
}

// WithCache toggles the sub-path cache.
func WithCache(on bool) Option {
	return func(o *Options) { o.Cache = on }
}

// WithFrontier toggles the 2-level destination shortcut.
func WithFrontier(on bool) Option {
	return func(o *Options) { o.Frontier = on }
}

// WithSkipKnownFailures toggles the failed-pair memo.
func WithSkipKnownFailures(on bool) Option {
	return func(o *Options) { o.SkipKnownFailures = on }
}

// WithLogger sets the logger; by default the one carried by the Solve
// context is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics records solve activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
