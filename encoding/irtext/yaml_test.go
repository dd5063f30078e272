package irtext_test

import (
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/encoding/irtext"
	"github.com/irtree/walk/ir"
)

// decimalComparer lets cmp.Diff look inside *apd.Decimal, whose fields
// are unexported, by comparing decimal value rather than struct shape.
var decimalComparer = cmp.Comparer(func(a, b *apd.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func lit(t *testing.T, s string) *ir.Lit {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return ir.NewLit(d)
}

func TestRoundTripProgram(t *testing.T) {
	prog := &ir.Program{Decls: []ir.Node{
		&ir.Assign{
			Target: ir.NewIdent("x"),
			Value:  &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: lit(t, "2")},
		},
		&ir.If{
			Cond: ir.NewIdent("x"),
			Then: &ir.Block{Stmts: []ir.Node{&ir.Return{Value: ir.NewIdent("x")}}},
			Else: nil,
		},
	}}

	data, err := irtext.Marshal(prog)
	require.NoError(t, err)

	back, err := irtext.Unmarshal(data)
	require.NoError(t, err)

	roundTripped, err := irtext.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(roundTripped))
}

func TestUnmarshalPreservesStructureAndValues(t *testing.T) {
	orig := &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: lit(t, "2.50")}

	data, err := irtext.Marshal(orig)
	require.NoError(t, err)

	back, err := irtext.Unmarshal(data)
	require.NoError(t, err)

	if diff := cmp.Diff(orig, back, decimalComparer); diff != "" {
		t.Errorf("round-tripped tree differs (-want +got):\n%s", diff)
	}
}

func TestUnmarshalUnknownKind(t *testing.T) {
	_, err := irtext.Unmarshal([]byte("kind: nonsense\n"))
	assert.Error(t, err)
}

func TestMarshalStructLit(t *testing.T) {
	s := &ir.StructLit{Fields: []*ir.Field{
		{Name: "a", Value: lit(t, "1")},
		{Name: "b", Value: ir.NewIdent("y")},
	}}
	data, err := irtext.Marshal(s)
	require.NoError(t, err)
	back, err := irtext.Unmarshal(data)
	require.NoError(t, err)
	sl, ok := back.(*ir.StructLit)
	require.True(t, ok)
	require.Len(t, sl.Fields, 2)
	assert.Equal(t, "a", sl.Fields[0].Name)
	assert.Equal(t, "b", sl.Fields[1].Name)
}
