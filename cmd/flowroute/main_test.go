package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AminosDz/routing-problem/config"
)

// line is 0 -e0- 1 -e1- 2 with capacity 10; both demands need e1.
const line = `3 2 0 2
0 0 0 1 1 10
1 0 1 2 1 10
0 0 2 7
1 1 2 5
`

type run struct {
	stdout, stderr bytes.Buffer
	err            error
}

func execute(t *testing.T, stdin string, args ...string) *run {
	t.Helper()
	r := &run{}
	cmd := newRootCmd(time.Now())
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&r.stdout)
	cmd.SetErr(&r.stderr)
	cmd.SetArgs(args)
	r.err = cmd.Execute()
	return r
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSolveStdio(t *testing.T) {
	r := execute(t, line, "solve", "--time-limit", "0s")
	require.NoError(t, r.err)
	require.Equal(t, "1\n0 0 1\n", r.stdout.String())
	require.Contains(t, r.stderr.String(), "solve finished")
}

func TestSolveFiles(t *testing.T) {
	in := write(t, "line.txt", line)
	out := filepath.Join(t.TempDir(), "flows.txt")
	metrics := filepath.Join(t.TempDir(), "metrics.txt")

	r := execute(t, "", "solve", "-i", in, "-o", out, "--metrics-out", metrics,
		"--order", "ascending_rate", "--log-format", "json", "--log-level", "debug")
	require.NoError(t, r.err)
	require.Empty(t, r.stdout.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "1\n1 1\n", string(got), "the smaller demand goes first")

	m, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(m), `flowroute_demands_total{reason="none",status="routed"} 1`)
	require.Contains(t, r.stderr.String(), `"msg":"demand finished"`)
}

func TestSolveFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Order = "ascending_rate"
	cfg.TimeLimit = 0
	data, err := cfg.Encode()
	require.NoError(t, err)
	path := write(t, "config.yaml", string(data))

	r := execute(t, line, "solve", "--config", path)
	require.NoError(t, r.err)
	require.Equal(t, "1\n1 1\n", r.stdout.String())

	r = execute(t, line, "solve", "--config", path, "--order", "input")
	require.NoError(t, r.err)
	require.Equal(t, "1\n0 0 1\n", r.stdout.String())
}

func TestSolveRejects(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "policy", stdin: line, args: []string{"solve", "--policy", "widest"}},
		{name: "time limit", stdin: line, args: []string{"solve", "--time-limit=-1s"}},
		{name: "log level", stdin: line, args: []string{"solve", "--log-level", "loud"}},
		{name: "missing config", stdin: line, args: []string{"solve", "--config", "/nonexistent/flowroute.yaml"}},
		{name: "bad instance", stdin: "3 2 0\n", args: []string{"solve"}},
		{name: "extra argument", stdin: line, args: []string{"solve", "now"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := execute(t, tc.stdin, tc.args...)
			require.Error(t, r.err)
			require.Empty(t, r.stdout.String())
		})
	}
}

func TestValidate(t *testing.T) {
	in := write(t, "line.txt", line)

	over := write(t, "over.txt", "2\n0 0 1\n1 1\n")
	r := execute(t, "", "validate", "-i", in, "-f", over)
	require.Error(t, r.err, "second flow exceeds e1's capacity")

	ok := write(t, "ok.txt", "1\n0 0 1\n")
	r = execute(t, "", "validate", "-i", in, "-f", ok)
	require.NoError(t, r.err)
	require.Equal(t, "ok: 1 of 2 demands routed\n", r.stdout.String())

	bad := write(t, "bad.txt", "1\n1 0\n")
	r = execute(t, "", "validate", "-i", in, "-f", bad)
	require.Error(t, r.err)
	require.Contains(t, r.stderr.String(), "flows rejected")
}

func TestValidateRoundTrip(t *testing.T) {
	in := write(t, "line.txt", line)
	out := filepath.Join(t.TempDir(), "flows.txt")
	require.NoError(t, execute(t, "", "solve", "-i", in, "-o", out, "--frontier").err)

	r := execute(t, "", "validate", "-i", in, "-f", out)
	require.NoError(t, r.err)
	require.Equal(t, "ok: 1 of 2 demands routed\n", r.stdout.String())
}

func TestValidateRequiresFlags(t *testing.T) {
	r := execute(t, "", "validate")
	require.Error(t, r.err)
}
