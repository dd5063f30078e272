package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

func TestForAllMatchingVisitsOnlyPredicate(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: &ir.UnaryExpr{Op: "-", X: lit(t, "2")}}

	var names []string
	err := traverse.ForAllMatching(tree, func(n ir.Node) bool {
		_, ok := n.(*ir.Lit)
		return ok
	}, func(n ir.Node) {
		names = append(names, n.(*ir.Lit).Value.String())
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, names)
}

func TestModifyAllMatchingMutatesInPlace(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{ir.NewIdent("a"), ir.NewIdent("b")}}
	result, err := traverse.ModifyAllMatching(tree, func(n ir.Node) bool {
		_, ok := n.(*ir.Ident)
		return ok
	}, func(n ir.Node) {
		n.(*ir.Ident).Name = n.(*ir.Ident).Name + "_renamed"
	})
	require.NoError(t, err)
	block := result.(*ir.Block)
	assert.Equal(t, "a_renamed", block.Stmts[0].(*ir.Ident).Name)
	assert.Equal(t, "b_renamed", block.Stmts[1].(*ir.Ident).Name)
}

func TestTransformAllMatchingRebuildsOnlyMatches(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{lit(t, "1"), ir.NewIdent("keep")}}
	result, err := traverse.TransformAllMatching(tree, func(n ir.Node) bool {
		_, ok := n.(*ir.Lit)
		return ok
	}, func(n ir.Node) ir.Node {
		return lit(t, "99")
	})
	require.NoError(t, err)
	block := result.(*ir.Block)
	assert.Equal(t, "99", block.Stmts[0].(*ir.Lit).Value.String())
	assert.True(t, ir.Same(block.Stmts[1], tree.Stmts[1]))
}

func TestNeverBacktracks(t *testing.T) {
	assert.True(t, traverse.NeverBacktracks(nil))
	assert.True(t, traverse.NeverBacktracks(assertErr{}))
	assert.False(t, traverse.NeverBacktracks(backtrackErr{}))
}

type assertErr struct{}

func (assertErr) Error() string { return "plain error" }

type backtrackErr struct{}

func (backtrackErr) Error() string                      { return "backtrack" }
func (backtrackErr) BacktrackTrigger() traverse.Trigger { return traverse.TriggerOK }

func TestAccessOfSlots(t *testing.T) {
	assert.Equal(t, traverse.Access{Write: true}, traverse.AccessOf(ir.KindAssign, "Target"))
	assert.Equal(t, traverse.Access{Read: true}, traverse.AccessOf(ir.KindAssign, "Value"))
	assert.Equal(t, traverse.Access{}, traverse.AccessOf(ir.KindLabel, "Stmt"))
	assert.Equal(t, traverse.Access{Read: true, Write: true}, traverse.AccessOf(ir.KindBinaryExpr, "X"))
}
