package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AminosDz/routing-problem/network"
)

// line builds 0 -e0- 1 -e1- 2 -e2- 3 in a single group, plus a spur
// 1 -e3- 3 in group 1.
func line(t *testing.T, opts ...network.Option) *network.Instance {
	t.Helper()
	b := network.NewBuilder(4, 4, opts...)
	require.NoError(t, b.AddEdge(0, 0, 0, 1, 1, 10))
	require.NoError(t, b.AddEdge(1, 0, 1, 2, 1, 10))
	require.NoError(t, b.AddEdge(2, 0, 2, 3, 1, 10))
	require.NoError(t, b.AddEdge(3, 1, 1, 3, 1, 4))
	require.NoError(t, b.AddConstraint(2, 1, 2))
	require.NoError(t, b.AddDemand(0, 0, 2, 5))
	in, err := b.Build()
	require.NoError(t, err)
	return in
}

func TestWalk(t *testing.T) {
	in := line(t)

	nodes, err := in.Walk(0, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, nodes)

	nodes, err = in.Walk(3, []int{2, 1})
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1}, nodes, "edges walk in either direction")

	_, err = in.Walk(0, []int{1})
	require.ErrorIs(t, err, network.ErrDisconnected)

	_, err = in.Walk(0, []int{0, 42})
	require.ErrorIs(t, err, network.ErrUnknownEdge)

	_, err = in.Walk(-1, nil)
	require.ErrorIs(t, err, network.ErrUnknownNodeID)
}

func TestCheckPath(t *testing.T) {
	cases := []struct {
		name string
		mod  func(in *network.Instance)
		flow network.Flow
		want error
	}{
		{name: "feasible", flow: network.Flow{Start: 0, End: 2, Rate: 5, Edges: []int{0, 1}}},
		{name: "empty", flow: network.Flow{Start: 0, End: 0, Rate: 5}, want: network.ErrEmptyPath},
		{name: "wrong end", flow: network.Flow{Start: 0, End: 3, Rate: 5, Edges: []int{0, 1}}, want: network.ErrWrongEnd},
		{name: "repeated node", flow: network.Flow{Start: 1, End: 1, Rate: 1, Edges: []int{3, 2, 1}}, want: network.ErrRepeatedNode},
		{name: "edge walked back", flow: network.Flow{Start: 0, End: 0, Rate: 1, Edges: []int{0, 0}}, want: network.ErrRepeatedNode},
		{name: "capacity", flow: network.Flow{Start: 0, End: 3, Rate: 5, Edges: []int{0, 3}}, want: network.ErrCapacity},
		{name: "exclusive pair", flow: network.Flow{Start: 1, End: 3, Rate: 1, Edges: []int{1, 2}}, want: network.ErrExcludedPair},
		{
			name: "node limit",
			mod:  func(in *network.Instance) { in.Nodes[1].Limit = 0 },
			flow: network.Flow{Start: 0, End: 2, Rate: 1, Edges: []int{0, 1}},
			want: network.ErrNodeLimit,
		},
		{
			name: "group quota counts every member use",
			mod:  func(in *network.Instance) { in.Groups[0].Limit = 1 },
			flow: network.Flow{Start: 0, End: 2, Rate: 1, Edges: []int{0, 1}},
			want: network.ErrGroupQuota,
		},
		{name: "unknown end", flow: network.Flow{Start: 0, End: 9, Rate: 1, Edges: []int{0}}, want: network.ErrUnknownNodeID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := line(t)
			if tc.mod != nil {
				tc.mod(in)
			}
			err := in.CheckPath(tc.flow)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestCommitTwoHop is the reference scenario: a 2-edge flow of rate 5
// through one group.
func TestCommitTwoHop(t *testing.T) {
	in := line(t)
	before := in.Clone()

	f := network.NewFlow(in.Demands[0], []int{0, 1})
	require.NoError(t, in.Commit(f))

	require.Equal(t, int64(5), in.Edges[0].Capacity)
	require.Equal(t, int64(5), in.Edges[1].Capacity)
	require.Equal(t, int64(10), in.Edges[2].Capacity)
	require.Equal(t, network.DefaultGroupLimit-2, in.Groups[0].Limit)
	require.Equal(t, network.DefaultGroupLimit, in.Groups[1].Limit)

	u := in.UsageSince(before)
	require.Equal(t, []int{1, 1, 1, 0}, u.NodeVisits)
	require.Equal(t, []int64{5, 5, 0, 0}, u.EdgeLoad)
	require.Equal(t, map[int]int{0: 2, 1: 0}, u.GroupUses)

	// the clone did not move
	require.Equal(t, int64(10), before.Edges[0].Capacity)
}

// TestCommitIsAllOrNothing rejects an infeasible flow without touching
// any counter.
func TestCommitIsAllOrNothing(t *testing.T) {
	in := line(t)
	in.Edges[1].Capacity = 2
	before := in.Clone()

	err := in.Commit(network.Flow{ID: 3, Start: 0, End: 2, Rate: 5, Edges: []int{0, 1}})
	require.ErrorIs(t, err, network.ErrCapacity)

	u := in.UsageSince(before)
	require.Equal(t, []int{0, 0, 0, 0}, u.NodeVisits)
	require.Equal(t, []int64{0, 0, 0, 0}, u.EdgeLoad)
	require.Equal(t, map[int]int{0: 0, 1: 0}, u.GroupUses)
}

// TestCommitUntilExhausted drains a node limit and checks the next commit fails.
func TestCommitUntilExhausted(t *testing.T) {
	in := line(t, network.WithNodeLimit(2))
	f := network.Flow{Start: 0, End: 1, Rate: 1, Edges: []int{0}}
	require.NoError(t, in.Commit(f))
	require.NoError(t, in.Commit(f))
	require.ErrorIs(t, in.Commit(f), network.ErrNodeLimit)
	require.Equal(t, 0, in.Nodes[0].Limit)
	require.Equal(t, 0, in.Nodes[1].Limit)
}

func TestReplay(t *testing.T) {
	in := line(t)
	require.NoError(t, in.Replay([]network.Flow{{ID: 0, Edges: []int{0, 1}}}))
	require.Equal(t, int64(5), in.Edges[1].Capacity)

	cases := []struct {
		name  string
		flows []network.Flow
		want  error
	}{
		{name: "unknown demand", flows: []network.Flow{{ID: 9, Edges: []int{0}}}, want: network.ErrUnknownDemand},
		{name: "twice", flows: []network.Flow{{ID: 0, Edges: []int{0, 1}}, {ID: 0, Edges: []int{0, 1}}}, want: network.ErrDuplicateFlow},
		{name: "wrong end", flows: []network.Flow{{ID: 0, Edges: []int{0}}}, want: network.ErrWrongEnd},
		{name: "over capacity", flows: []network.Flow{{ID: 0, Edges: []int{0, 3, 2}}}, want: network.ErrCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, line(t).Replay(tc.flows), tc.want)
		})
	}
}
