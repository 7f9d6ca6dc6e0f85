// SPDX-License-Identifier: MIT

// Package config reads the solver configuration from YAML.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default:
//
//	policy: min_dist          # first_fit | min_dist | max_cap
//	order: ascending_rate     # input | ascending_rate
//	time_limit: 1.9s          # duration or seconds, 0 disables the budget
//	fan_out: 7                # 0 examines every neighbor
//	cache: true
//	frontier: false
//	skip_known_failures: false
//	presort: false            # hubs first, parallel edges by policy
//	node_limit: 200
//	group_limit: 100
//	log:
//	  level: info             # debug | info | warn | error
//	  format: text            # text | json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AminosDz/routing-problem/logging"
	"github.com/AminosDz/routing-problem/network"
	"github.com/AminosDz/routing-problem/policy"
	"github.com/AminosDz/routing-problem/solver"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the whole solver configuration.
type Config struct {
	Policy            string        `yaml:"policy"`
	Order             string        `yaml:"order"`
	TimeLimit         Duration      `yaml:"time_limit"`
	FanOut            int           `yaml:"fan_out"`
	Cache             bool          `yaml:"cache"`
	Frontier          bool          `yaml:"frontier"`
	SkipKnownFailures bool          `yaml:"skip_known_failures"`
	Presort           bool          `yaml:"presort"`
	NodeLimit         int           `yaml:"node_limit"`
	GroupLimit        int           `yaml:"group_limit"`
	Log               Log           `yaml:"log"`
}

// Duration is a time.Duration read from YAML as a Go duration string
// ("1.9s", "250ms") or as a plain number of seconds (0, 2, 1.5).
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	switch value.ShortTag() {
	case "!!int", "!!float":
		var secs float64
		if err := value.Decode(&secs); err != nil {
			return err
		}
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes d as a duration string.
func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Policy:     policy.FirstFit.Name(),
		Order:      solver.InputOrder.String(),
		TimeLimit:  Duration(solver.DefaultTimeLimit),
		Cache:      true,
		NodeLimit:  network.DefaultNodeLimit,
		GroupLimit: network.DefaultGroupLimit,
		Log:        Log{Level: "info", Format: logging.FormatText},
	}
}

// Parse decodes data over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	if _, err := policy.Parse(c.Policy); err != nil {
		return fmt.Errorf("%w: policy: %w", ErrInvalid, err)
	}
	if _, err := solver.ParseOrder(c.Order); err != nil {
		return fmt.Errorf("%w: order: %w", ErrInvalid, err)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit %s is negative", ErrInvalid, c.TimeLimit)
	}
	if c.FanOut < 0 {
		return fmt.Errorf("%w: fan_out %d is negative", ErrInvalid, c.FanOut)
	}
	if c.NodeLimit < 0 {
		return fmt.Errorf("%w: node_limit %d is negative", ErrInvalid, c.NodeLimit)
	}
	if c.GroupLimit < 0 {
		return fmt.Errorf("%w: group_limit %d is negative", ErrInvalid, c.GroupLimit)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %w", ErrInvalid, err)
	}
	return nil
}

// NetworkOptions returns the instance construction options; c must be
// valid. With Presort, neighbors are ordered by degree and parallel edges by
// the configured policy.
func (c Config) NetworkOptions() []network.Option {
	opts := []network.Option{
		network.WithNodeLimit(c.NodeLimit),
		network.WithGroupLimit(c.GroupLimit),
	}
	if c.Presort {
		p, _ := policy.Parse(c.Policy)
		opts = append(opts, network.WithNeighborOrder(network.ByDegree), network.WithEdgeOrder(p.Compare))
	}
	return opts
}

// SolverOptions returns the solver options; c must be valid.
func (c Config) SolverOptions() ([]solver.Option, error) {
	p, err := policy.Parse(c.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: policy: %w", ErrInvalid, err)
	}
	ord, err := solver.ParseOrder(c.Order)
	if err != nil {
		return nil, fmt.Errorf("%w: order: %w", ErrInvalid, err)
	}
	return []solver.Option{
		solver.WithPolicy(p),
		solver.WithOrder(ord),
		solver.WithTimeLimit(time.Duration(c.TimeLimit)),
		solver.WithFanOut(c.FanOut),
		solver.WithCache(c.Cache),
		solver.WithFrontier(c.Frontier),
		solver.WithSkipKnownFailures(c.SkipKnownFailures),
	}, nil
}

// Encode renders c as YAML.
func (c Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}
