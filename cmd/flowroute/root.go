// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AminosDz/routing-problem/config"
	"github.com/AminosDz/routing-problem/logging"
)

// stdio is the "-" path for --input and --output.
const stdio = "-"

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd(started time.Time) *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:          "flowroute",
		Short:        "Greedy multi-demand routing over capacitated networks",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "text or json (overrides config)")

	root.AddCommand(newSolveCmd(g, started), newValidateCmd(g))
	return root
}

// load resolves the configuration: defaults, then the file, then the
// global flags.
func (g *globals) load() (config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
}

// openInput returns the reader for path, or the command input for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == stdio || path == "" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// createOutput returns the writer for path, or the command output for "-".
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == stdio || path == "" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
