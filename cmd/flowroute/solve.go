// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/AminosDz/routing-problem/config"
	"github.com/AminosDz/routing-problem/instanceio"
	"github.com/AminosDz/routing-problem/logging"
	"github.com/AminosDz/routing-problem/solver"
)

type solveFlags struct {
	input, output string
	metricsOut    string

	policy            string
	order             string
	timeLimit         time.Duration
	fanOut            int
	frontier          bool
	noCache           bool
	skipKnownFailures bool
	presort           bool
}

func newSolveCmd(g *globals, started time.Time) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Route every demand of an instance and write the flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}
			return runSolve(cmd, cfg, f, started)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", stdio, "instance file, - for stdin")
	fl.StringVarP(&f.output, "output", "o", stdio, "flow file, - for stdout")
	fl.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics in text format to this file")
	fl.StringVar(&f.policy, "policy", "", "edge policy: first_fit, min_dist or max_cap")
	fl.StringVar(&f.order, "order", "", "demand order: input or ascending_rate")
	fl.DurationVar(&f.timeLimit, "time-limit", 0, "wall-clock budget from process start, 0s for none")
	fl.IntVar(&f.fanOut, "fan-out", 0, "neighbors examined per node, 0 for all")
	fl.BoolVar(&f.frontier, "frontier", false, "enable the 2-level destination shortcut")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the sub-path cache")
	fl.BoolVar(&f.skipKnownFailures, "skip-known-failures", false, "skip demands on pairs that already failed at a lower rate")
	fl.BoolVar(&f.presort, "presort", false, "order neighbors by degree and parallel edges by policy")
	return cmd
}

// apply copies explicitly set flags over cfg and validates the result.
func (f *solveFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("policy") {
		cfg.Policy = f.policy
	}
	if fl.Changed("order") {
		cfg.Order = f.order
	}
	if fl.Changed("time-limit") {
		cfg.TimeLimit = config.Duration(f.timeLimit)
	}
	if fl.Changed("fan-out") {
		cfg.FanOut = f.fanOut
	}
	if fl.Changed("frontier") {
		cfg.Frontier = f.frontier
	}
	if fl.Changed("no-cache") {
		cfg.Cache = !f.noCache
	}
	if fl.Changed("skip-known-failures") {
		cfg.SkipKnownFailures = f.skipKnownFailures
	}
	if fl.Changed("presort") {
		cfg.Presort = f.presort
	}
	return cfg.Validate()
}

func runSolve(cmd *cobra.Command, cfg config.Config, f *solveFlags, started time.Time) error {
	log := newLogger(cmd, cfg)
	ctx := logging.WithLogger(cmd.Context(), log)

	r, err := openInput(cmd, f.input)
	if err != nil {
		return err
	}
	in, err := instanceio.Read(r, cfg.NetworkOptions()...)
	r.Close()
	if err != nil {
		return err
	}

	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	opts = append(opts, solver.WithStartTime(started), solver.WithMetrics(solver.NewMetrics(reg)))

	sv, err := solver.New(in, opts...)
	if err != nil {
		return err
	}
	rep, err := sv.Solve(ctx)
	if err != nil {
		return err
	}

	w, err := createOutput(cmd, f.output)
	if err != nil {
		return err
	}
	if err := instanceio.WriteFlows(w, rep.Flows); err != nil {
		w.Close()
		return fmt.Errorf("write flows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write flows: %w", err)
	}

	if f.metricsOut != "" {
		if err := dumpMetrics(reg, f.metricsOut); err != nil {
			return err
		}
	}
	return nil
}

func dumpMetrics(reg *prometheus.Registry, path string) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer out.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return out.Close()
}
