package tree_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lae/tree"
	"github.com/stretchr/testify/require"
)

// TestParseLeaf decodes a bare matrix.
func TestParseLeaf(t *testing.T) {
	n, err := tree.Parse(strings.NewReader(`[[1, 2], [3, 4.5]]`))
	require.NoError(t, err)
	require.True(t, n.IsLeaf())
	require.Equal(t, [][]float64{{1, 2}, {3, 4.5}}, n.Matrix())
}

// TestParseEmptyMatrix keeps the empty shape instead of nil.
func TestParseEmptyMatrix(t *testing.T) {
	n, err := tree.Parse(strings.NewReader(`[]`))
	require.NoError(t, err)
	require.NotNil(t, n.Matrix())
	require.Empty(t, n.Matrix())
}

// TestParseNested decodes operators of every kind.
func TestParseNested(t *testing.T) {
	const in = `{
	  "operator": "+",
	  "operands": [
	    {"operator": "*", "operands": [[[1, 2]], [[3], [4]]]},
	    {"operator": "-", "operands": [{"operator": "T", "operands": [[[5]]]}]}
	  ]
	}`
	root, err := tree.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, tree.KindAdd, root.Kind())

	kids := root.Children()
	require.Len(t, kids, 2)
	require.Equal(t, tree.KindMultiply, kids[0].Kind())
	require.Equal(t, tree.KindNegate, kids[1].Kind())
	require.Equal(t, tree.KindTranspose, kids[1].Children()[0].Kind())
	require.Equal(t, [][]float64{{3}, {4}}, kids[0].Children()[1].Matrix())
	require.Same(t, kids[0], root.FindResolvable())
}

// TestParseErrors covers the malformed and unknown-operator paths.
func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `{`, tree.ErrMalformed},
		{"scalar", `42`, tree.ErrMalformed},
		{"flat array", `[1, 2]`, tree.ErrMalformed},
		{"ragged", `[[1, 2], [3]]`, tree.ErrMalformed},
		{"null row", `[[1], null]`, tree.ErrMalformed},
		{"no operands", `{"operator": "+", "operands": []}`, tree.ErrMalformed},
		{"bad operand", `{"operator": "-", "operands": ["x"]}`, tree.ErrMalformed},
		{"unknown operator", `{"operator": "/", "operands": [[[1]]]}`, tree.ErrUnknownOperator},
		{"nested unknown", `{"operator": "+", "operands": [[[1]], {"operator": "inv", "operands": [[[1]]]}]}`, tree.ErrUnknownOperator},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tree.Parse(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNodeMarshalRoundTrip re-parses an encoded tree.
func TestNodeMarshalRoundTrip(t *testing.T) {
	root := tree.NewOp(tree.KindMultiply,
		tree.NewLeaf([][]float64{{1, 2}}),
		tree.NewOp(tree.KindTranspose, tree.NewLeaf([][]float64{{3, 4}})),
	)
	raw, err := json.Marshal(root)
	require.NoError(t, err)
	require.JSONEq(t, `{"operator":"*","operands":[[[1,2]],{"operator":"T","operands":[[[3,4]]]}]}`, string(raw))

	back, err := tree.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, tree.KindMultiply, back.Kind())
	require.Equal(t, [][]float64{{3, 4}}, back.Children()[1].Children()[0].Matrix())
}

// TestWriteDocuments checks both output shapes.
func TestWriteDocuments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tree.WriteResult(&buf, [][]float64{{6, 8}, {10, 12}}))
	require.JSONEq(t, `{"result": [[6, 8], [10, 12]]}`, buf.String())

	buf.Reset()
	require.NoError(t, tree.WriteResult(&buf, nil))
	require.JSONEq(t, `{"result": []}`, buf.String())

	buf.Reset()
	require.NoError(t, tree.WriteError(&buf, "shape mismatch"))
	require.JSONEq(t, `{"error": "shape mismatch"}`, buf.String())
}

// TestFileRoundTrip exercises ParseFile, WriteFile and WriteErrorFile on disk.
func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"operator": "-", "operands": [[[1, -2]]]}`), 0o600))

	n, err := tree.ParseFile(in)
	require.NoError(t, err)
	require.Equal(t, tree.KindNegate, n.Kind())

	out := filepath.Join(dir, "out.json")
	require.NoError(t, tree.WriteFile(out, [][]float64{{-1, 2}}))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.JSONEq(t, `{"result": [[-1, 2]]}`, string(raw))

	require.NoError(t, tree.WriteErrorFile(out, "boom"))
	raw, err = os.ReadFile(out)
	require.NoError(t, err)
	require.JSONEq(t, `{"error": "boom"}`, string(raw))

	_, err = tree.ParseFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
