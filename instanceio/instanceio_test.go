package instanceio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AminosDz/routing-problem/instanceio"
	"github.com/AminosDz/routing-problem/network"
)

const square = `4 5 1 2
0 0 0 1 3 10
1 0 1 2 4 10
2 1 2 3 1 20
3 1 3 0 2 20

4 2 0 2 9
1 1 1 2
0 0 2 5
1 3 1 7
`

func TestRead(t *testing.T) {
	in, err := instanceio.Read(strings.NewReader(square))
	require.NoError(t, err)
	require.Equal(t, 4, in.NodeCount())
	require.Equal(t, 5, in.EdgeCount())
	require.Equal(t, 1, in.ConstraintCount)
	require.Len(t, in.Demands, 2)

	e := in.Edges[4]
	require.Equal(t, 2, e.Group)
	require.Equal(t, int64(2), e.Distance)
	require.Equal(t, int64(9), e.Capacity)
	require.True(t, in.Edges[1].Excludes(2))
	require.True(t, in.Edges[2].Excludes(1), "exclusion is symmetric")

	require.Equal(t, network.Demand{ID: 1, Start: 3, End: 1, Rate: 7}, in.Demands[1])
	require.True(t, in.Nodes[3].Endpoint)
	require.Equal(t, network.DefaultNodeLimit, in.Nodes[0].Limit)
	require.Len(t, in.Groups, 3)
}

func TestReadForwardsOptions(t *testing.T) {
	in, err := instanceio.Read(strings.NewReader(square), network.WithNodeLimit(9))
	require.NoError(t, err)
	require.Equal(t, 9, in.Nodes[2].Limit)
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty", input: "", want: instanceio.ErrTruncated},
		{name: "short header", input: "4 5 1\n", want: instanceio.ErrFieldCount},
		{name: "word", input: "4 x 0 0\n", want: instanceio.ErrSyntax},
		{name: "missing edges", input: "2 2 0 0\n0 0 0 1 1 1\n", want: instanceio.ErrTruncated},
		{name: "short edge", input: "2 1 0 0\n0 0 0 1 1\n", want: instanceio.ErrFieldCount},
		{name: "node out of range", input: "2 1 0 0\n0 0 0 5 1 1\n", want: network.ErrNodeOutOfRange},
		{name: "duplicate edge", input: "2 2 0 0\n0 0 0 1 1 1\n0 0 0 1 1 1\n", want: network.ErrDuplicateEdge},
		{name: "negative capacity", input: "2 1 0 0\n0 0 0 1 1 -1\n", want: network.ErrNegativeValue},
		{name: "self constraint", input: "2 1 1 0\n0 0 0 1 1 1\n0 0 0\n", want: network.ErrSelfConstraint},
		{name: "duplicate demand", input: "2 1 0 2\n0 0 0 1 1 1\n0 0 1 1\n0 1 0 1\n", want: network.ErrDuplicateDemand},
		{name: "negative header", input: "2 1 -1 0\n", want: network.ErrNegativeValue},
		{name: "trailing", input: "2 1 0 0\n0 0 0 1 1 1\n7\n", want: instanceio.ErrTrailingData},
		{name: "huge edge count", input: "1 9000000000000000000 0 0\n", want: network.ErrCountTooLarge},
		{name: "huge demand count", input: "2 0 0 3000000000\n", want: network.ErrCountTooLarge},
		{name: "declared edges missing", input: "2 2147483647 0 0\n0 0 0 1 1 1\n", want: instanceio.ErrTruncated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instanceio.Read(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFlowsRoundTrip(t *testing.T) {
	flows := []network.Flow{
		{ID: 3, Edges: []int{0, 4, 2}},
		{ID: 0, Edges: []int{7}},
	}
	var buf bytes.Buffer
	require.NoError(t, instanceio.WriteFlows(&buf, flows))
	require.Equal(t, "2\n3 0 4 2\n0 7\n", buf.String())

	got, err := instanceio.ReadFlows(&buf)
	require.NoError(t, err)
	require.Equal(t, flows, got)
}

func TestWriteNoFlows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, instanceio.WriteFlows(&buf, nil))
	require.Equal(t, "0\n", buf.String())

	got, err := instanceio.ReadFlows(&buf)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadFlowsErrors(t *testing.T) {
	_, err := instanceio.ReadFlows(strings.NewReader("2\n1 0\n"))
	require.ErrorIs(t, err, instanceio.ErrTruncated)

	_, err = instanceio.ReadFlows(strings.NewReader("-1\n"))
	require.ErrorIs(t, err, network.ErrNegativeValue)

	_, err = instanceio.ReadFlows(strings.NewReader("9000000000000000000\n"))
	require.ErrorIs(t, err, network.ErrCountTooLarge)

	_, err = instanceio.ReadFlows(strings.NewReader("2147483647\n1 0\n"))
	require.ErrorIs(t, err, instanceio.ErrTruncated)

	_, err = instanceio.ReadFlows(strings.NewReader("1\n1 a\n"))
	require.ErrorIs(t, err, instanceio.ErrSyntax)

	_, err = instanceio.ReadFlows(strings.NewReader("1\n1 0\n2 0\n"))
	require.ErrorIs(t, err, instanceio.ErrTrailingData)
}
