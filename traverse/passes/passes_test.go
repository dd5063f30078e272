package passes_test

import (
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
	"github.com/irtree/walk/traverse/passes"
)

func lit(t *testing.T, s string) *ir.Lit {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	require.NoError(t, err)
	return ir.NewLit(d)
}

func TestConstFoldBinaryExpr(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: lit(t, "1.5"), Y: lit(t, "2.5")}
	cf := passes.NewConstFold()

	result, err := traverse.ApplyTransform(cf, tree)
	require.NoError(t, err)

	l, ok := result.(*ir.Lit)
	require.True(t, ok)
	assert.Equal(t, "4.0", l.Value.String())
	assert.Equal(t, 1, cf.Folded)
}

func TestConstFoldLeavesNonLiteralsAlone(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: ir.NewIdent("x"), Y: lit(t, "1")}
	cf := passes.NewConstFold()

	result, err := traverse.ApplyTransform(cf, tree)
	require.NoError(t, err)
	assert.True(t, ir.Same(result, tree))
	assert.Equal(t, 0, cf.Folded)
}

func TestConstFoldNested(t *testing.T) {
	inner := &ir.BinaryExpr{Op: "*", X: lit(t, "2"), Y: lit(t, "3")}
	outer := &ir.BinaryExpr{Op: "+", X: inner, Y: lit(t, "1")}
	cf := passes.NewConstFold()

	result, err := traverse.ApplyTransform(cf, outer)
	require.NoError(t, err)
	l := result.(*ir.Lit)
	assert.Equal(t, "7", l.Value.String())
	assert.Equal(t, 2, cf.Folded)
}

func TestRenameOnlyTouchesMatchingIdents(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{ir.NewIdent("a"), ir.NewIdent("b")}}
	r := passes.NewRename(map[string]string{"a": "renamed_a"})

	result, err := traverse.ApplyModifier(r, tree)
	require.NoError(t, err)
	block := result.(*ir.Block)
	assert.Equal(t, "renamed_a", block.Stmts[0].(*ir.Ident).Name)
	assert.Equal(t, "b", block.Stmts[1].(*ir.Ident).Name)
	assert.Equal(t, 1, r.Renamed)
}

func TestNodeCounterTalliesKinds(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: ir.NewIdent("x")}
	c := passes.NewNodeCounter()

	_, err := traverse.ApplyInspector(c, tree)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Counts[ir.KindBinaryExpr])
	assert.Equal(t, 1, c.Counts[ir.KindLit])
	assert.Equal(t, 1, c.Counts[ir.KindIdent])
}

func TestAssignedVarsMergesAcrossJoin(t *testing.T) {
	j := ir.NewIdent("J")
	thenArm := &ir.Block{Stmts: []ir.Node{&ir.Assign{Target: ir.NewIdent("a"), Value: lit(t, "1")}, j}}
	elseArm := &ir.Block{Stmts: []ir.Node{&ir.Assign{Target: ir.NewIdent("b"), Value: lit(t, "2")}, j}}
	tree := &ir.If{Cond: ir.NewIdent("cond"), Then: thenArm, Else: elseArm}

	a := passes.NewAssignedVars()
	_, err := traverse.ApplyInspector(a, tree)
	require.NoError(t, err)
	assert.True(t, a.Assigned["a"])
	assert.True(t, a.Assigned["b"])
}
