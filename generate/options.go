// SPDX-License-Identifier: MIT
// Package: routing-problem/generate
//
// options.go: functional options for the instance generators.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//     Generators themselves never panic; they return sentinel errors.
//   • Defaults are deterministic: a fixed seed, one group, unit distances.

package generate

import (
	"fmt"
	"math/rand"

	"github.com/AminosDz/routing-problem/network"
)

// Deterministic defaults.
const (
	DefaultSeed     = int64(1)
	DefaultGroups   = 1
	DefaultDemands  = 10
	defaultCapMin   = int64(10)
	defaultCapMax   = int64(100)
	defaultDistMin  = int64(1)
	defaultDistMax  = int64(1)
	defaultRateMin  = int64(1)
	defaultRateMax  = int64(10)
	probabilityLow  = 0.0
	probabilityHigh = 1.0
)

// Option customizes a generator before sampling begins.
type Option func(*config)

// config aggregates every generator knob. Passed by value to generators.
type config struct {
	rng *rand.Rand

	groups           int
	capMin, capMax   int64
	distMin, distMax int64
	rateMin, rateMax int64
	demands          int
	exclusion        float64 // per consecutive incident edge pair
	parallel         float64 // chance an edge gets a parallel twin
	networkOptions   []network.Option
}

func newConfig(opts ...Option) config {
	cfg := config{
		rng:     rand.New(rand.NewSource(DefaultSeed)),
		groups:  DefaultGroups,
		capMin:  defaultCapMin,
		capMax:  defaultCapMax,
		distMin: defaultDistMin,
		distMax: defaultDistMax,
		rateMin: defaultRateMin,
		rateMax: defaultRateMax,
		demands: DefaultDemands,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func checkRange(name string, lo, hi, min int64) {
	if lo < min || hi < lo {
		panic(fmt.Sprintf("generate: %s(%d, %d) needs %d <= lo <= hi", name, lo, hi, min))
	}
}

func checkProbability(name string, p float64) {
	if p < probabilityLow || p > probabilityHigh {
		panic(fmt.Sprintf("generate: %s(%g) outside [0,1]", name, p))
	}
}

// WithSeed replaces the RNG with one seeded by seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generate: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithGroups spreads edges uniformly over k groups. Panics if k < 1.
func WithGroups(k int) Option {
	if k < 1 {
		panic(fmt.Sprintf("generate: WithGroups(%d)", k))
	}
	return func(c *config) { c.groups = k }
}

// WithCapacity draws every edge capacity uniformly from [lo, hi].
func WithCapacity(lo, hi int64) Option {
	checkRange("WithCapacity", lo, hi, 0)
	return func(c *config) { c.capMin, c.capMax = lo, hi }
}

// WithDistance draws every edge distance uniformly from [lo, hi].
func WithDistance(lo, hi int64) Option {
	checkRange("WithDistance", lo, hi, 0)
	return func(c *config) { c.distMin, c.distMax = lo, hi }
}

// WithRate draws every demand rate uniformly from [lo, hi].
func WithRate(lo, hi int64) Option {
	checkRange("WithRate", lo, hi, 0)
	return func(c *config) { c.rateMin, c.rateMax = lo, hi }
}

// WithDemands sets how many demands are drawn. Panics if k < 0.
func WithDemands(k int) Option {
	if k < 0 {
		panic(fmt.Sprintf("generate: WithDemands(%d)", k))
	}
	return func(c *config) { c.demands = k }
}

// WithExclusions makes each pair of consecutive edges incident to a node
// mutually exclusive with probability p.
func WithExclusions(p float64) Option {
	checkProbability("WithExclusions", p)
	return func(c *config) { c.exclusion = p }
}

// WithParallel gives each sampled edge a parallel twin with probability p.
func WithParallel(p float64) Option {
	checkProbability("WithParallel", p)
	return func(c *config) { c.parallel = p }
}

// WithNetworkOptions forwards opts to network.NewBuilder.
func WithNetworkOptions(opts ...network.Option) Option {
	return func(c *config) { c.networkOptions = append(c.networkOptions, opts...) }
}
