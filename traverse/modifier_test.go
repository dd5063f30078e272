package traverse_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

type renameModifier struct {
	traverse.BaseModifier
	from, to string
}

func (m *renameModifier) Preorder(n ir.Node) bool {
	if id, ok := n.(*ir.Ident); ok && id.Name == m.from {
		id.Name = m.to
	}
	return true
}

func TestModifierMutatesOwnedClone(t *testing.T) {
	x := ir.NewIdent("x")
	tree := &ir.UnaryExpr{Op: "-", X: x}

	m := &renameModifier{from: "x", to: "y"}
	m.SetName("rename-x")

	result, err := traverse.ApplyModifier(m, tree)
	require.NoError(t, err)

	assert.Equal(t, "x", x.Name, "the original identifier must be untouched")
	ue := result.(*ir.UnaryExpr)
	assert.Equal(t, "y", ue.X.(*ir.Ident).Name)
	assert.False(t, ir.Same(result, tree))
}

func TestModifierUnchangedSubtreeStillNewClone(t *testing.T) {
	tree := &ir.UnaryExpr{Op: "-", X: ir.NewIdent("z")}
	m := &renameModifier{from: "nope", to: "never"}
	m.SetName("noop-rename")

	result, err := traverse.ApplyModifier(m, tree)
	require.NoError(t, err)
	assert.False(t, ir.Same(result, tree), "Modifier always returns an owned clone, never the original identity")
	assert.Equal(t, "z", result.(*ir.UnaryExpr).X.(*ir.Ident).Name)
}

func TestModifierDAGSharingMemoizesResult(t *testing.T) {
	shared := ir.NewIdent("x")
	tree := &ir.BinaryExpr{Op: "+", X: shared, Y: shared}

	m := &renameModifier{from: "x", to: "w"}
	m.SetName("rename-shared")

	result, err := traverse.ApplyModifier(m, tree)
	require.NoError(t, err)
	bin := result.(*ir.BinaryExpr)
	assert.True(t, ir.Same(bin.X, bin.Y))
	assert.Equal(t, "w", bin.X.(*ir.Ident).Name)
}

func TestAssertUnchangedRejectsReplacement(t *testing.T) {
	orig := ir.NewIdent("x")
	replaced := ir.NewIdent("y")
	assert.NoError(t, traverse.AssertUnchanged(orig, orig))
	err := traverse.AssertUnchanged(orig, replaced)
	assert.True(t, errors.Is(err, traverse.ErrConstReplacement))
}
