// SPDX-License-Identifier: MIT

// Package instanceio reads problem instances and reads or writes flow lists
// in the whitespace-separated text format.
//
// Instance:
//
//	<nodes> <edges> <constraints> <demands>
//	<edge id> <group id> <node a> <node b> <distance> <capacity>      × edges
//	<anchor node> <edge id 1> <edge id 2>                            × constraints
//	<demand id> <start node> <end node> <rate>                       × demands
//
// Flows:
//
//	<count>
//	<demand id> <edge id>...                                         × count
//
// Blank lines are skipped. Anything after the declared records is an error.
package instanceio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AminosDz/routing-problem/network"
)

// Sentinel errors for text I/O.
var (
	// ErrSyntax indicates a token that is not a base-10 integer.
	ErrSyntax = errors.New("instanceio: not an integer")

	// ErrFieldCount indicates a record with the wrong number of fields.
	ErrFieldCount = errors.New("instanceio: wrong number of fields")

	// ErrTruncated indicates the input ended before every declared record.
	ErrTruncated = errors.New("instanceio: unexpected end of input")

	// ErrTrailingData indicates content after the last declared record.
	ErrTrailingData = errors.New("instanceio: data after last record")
)

const maxLine = 16 << 20

// lines yields non-blank lines with their 1-based numbers.
type lines struct {
	sc   *bufio.Scanner
	line int
}

func newLines(r io.Reader) *lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	return &lines{sc: sc}
}

// next returns the fields of the next non-blank line.
func (l *lines) next(what string) ([]string, error) {
	for l.sc.Scan() {
		l.line++
		if f := strings.Fields(l.sc.Text()); len(f) > 0 {
			return f, nil
		}
	}
	if err := l.sc.Err(); err != nil {
		return nil, fmt.Errorf("instanceio: line %d: %w", l.line+1, err)
	}
	return nil, fmt.Errorf("%w: expected %s after line %d", ErrTruncated, what, l.line)
}

// ints reads the next record as exactly n integers (n < 0: at least -n).
func (l *lines) ints(what string, n int) ([]int64, error) {
	f, err := l.next(what)
	if err != nil {
		return nil, err
	}
	if (n >= 0 && len(f) != n) || (n < 0 && len(f) < -n) {
		return nil, fmt.Errorf("instanceio: line %d (%s): %w: got %d", l.line, what, ErrFieldCount, len(f))
	}
	out := make([]int64, len(f))
	for i, tok := range f {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instanceio: line %d (%s) field %d: %w: %q", l.line, what, i+1, ErrSyntax, tok)
		}
		out[i] = v
	}
	return out, nil
}

// end fails if any non-blank line remains.
func (l *lines) end() error {
	for l.sc.Scan() {
		l.line++
		if strings.TrimSpace(l.sc.Text()) != "" {
			return fmt.Errorf("instanceio: line %d: %w", l.line, ErrTrailingData)
		}
	}
	return l.sc.Err()
}

// checkCount rejects a declared count that is negative or above
// network.MaxCount.
func checkCount(what string, v int64) error {
	switch {
	case v < 0:
		return fmt.Errorf("instanceio: %s: %w: %d", what, network.ErrNegativeValue, v)
	case v > network.MaxCount:
		return fmt.Errorf("instanceio: %s: %w: %d", what, network.ErrCountTooLarge, v)
	}
	return nil
}

// Read parses an instance. opts are passed to network.NewBuilder; record
// validation (ranges, duplicates, negative values) is the builder's.
func Read(r io.Reader, opts ...network.Option) (*network.Instance, error) {
	l := newLines(r)
	h, err := l.ints("header", 4)
	if err != nil {
		return nil, err
	}
	for _, v := range h {
		if err := checkCount("header", v); err != nil {
			return nil, err
		}
	}
	nodes, edges, constraints, demands := int(h[0]), int(h[1]), int(h[2]), int(h[3])

	b := network.NewBuilder(nodes, edges, opts...)
	for i := 0; i < edges; i++ {
		v, err := l.ints("edge", 6)
		if err != nil {
			return nil, err
		}
		if err := b.AddEdge(int(v[0]), int(v[1]), int(v[2]), int(v[3]), v[4], v[5]); err != nil {
			return nil, fmt.Errorf("instanceio: line %d: %w", l.line, err)
		}
	}
	for i := 0; i < constraints; i++ {
		v, err := l.ints("constraint", 3)
		if err != nil {
			return nil, err
		}
		if err := b.AddConstraint(int(v[0]), int(v[1]), int(v[2])); err != nil {
			return nil, fmt.Errorf("instanceio: line %d: %w", l.line, err)
		}
	}
	for i := 0; i < demands; i++ {
		v, err := l.ints("demand", 4)
		if err != nil {
			return nil, err
		}
		if err := b.AddDemand(int(v[0]), int(v[1]), int(v[2]), v[3]); err != nil {
			return nil, fmt.Errorf("instanceio: line %d: %w", l.line, err)
		}
	}
	if err := l.end(); err != nil {
		return nil, err
	}

	in, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("instanceio: %w", err)
	}
	return in, nil
}

// WriteFlows writes the count line and one line per flow.
func WriteFlows(w io.Writer, flows []network.Flow) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(len(flows)))
	bw.WriteByte('\n')
	for _, f := range flows {
		bw.WriteString(strconv.Itoa(f.ID))
		for _, e := range f.Edges {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(e))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadFlows parses a flow list. Only ID and Edges are set.
func ReadFlows(r io.Reader) ([]network.Flow, error) {
	l := newLines(r)
	h, err := l.ints("flow count", 1)
	if err != nil {
		return nil, err
	}
	if err := checkCount("flow count", h[0]); err != nil {
		return nil, err
	}
	var flows []network.Flow
	for i := int64(0); i < h[0]; i++ {
		v, err := l.ints("flow", -1)
		if err != nil {
			return nil, err
		}
		edges := make([]int, len(v)-1)
		for k := range edges {
			edges[k] = int(v[k+1])
		}
		flows = append(flows, network.Flow{ID: int(v[0]), Edges: edges})
	}
	if err := l.end(); err != nil {
		return nil, err
	}
	return flows, nil
}
