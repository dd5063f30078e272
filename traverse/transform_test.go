package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

type replaceOneTransform struct {
	traverse.BaseTransform
	target string
	to     ir.Node
}

func (t *replaceOneTransform) Postorder(n ir.Node) ir.Node {
	if l, ok := n.(*ir.Lit); ok && l.Value.String() == t.target {
		return t.to
	}
	return n
}

// S4 — Transform replace.
func TestS4TransformReplace(t *testing.T) {
	one := lit(t, "1")
	two := lit(t, "2")
	tree := &ir.BinaryExpr{Op: "+", X: one, Y: two}

	tr := &replaceOneTransform{target: "1", to: lit(t, "10")}
	tr.SetName("replace-one")

	result, err := traverse.ApplyTransform(tr, tree)
	require.NoError(t, err)

	newBin, ok := result.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.False(t, ir.Same(result, tree), "replaced node must have a new identity")
	assert.Equal(t, "10", newBin.X.(*ir.Lit).Value.String())
	assert.True(t, ir.Same(newBin.Y, two), "unchanged child must preserve identity")
}

type identityTransform struct {
	traverse.BaseTransform
}

// S5 — Transform identity shortcut.
func TestS5TransformIdentityShortcut(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: lit(t, "2")}
	tr := &identityTransform{}
	tr.SetName("identity")

	result, err := traverse.ApplyTransform(tr, tree)
	require.NoError(t, err)
	assert.True(t, ir.Same(result, tree), "an untouched Transform must return the input's own identity")
}

func TestTransformPruneSkipsChildren(t *testing.T) {
	tree := &ir.BinaryExpr{Op: "+", X: lit(t, "1"), Y: lit(t, "2")}
	seen := map[string]bool{}
	p := &pruningTransform{seen: seen}
	p.SetName("pruning")

	_, err := traverse.ApplyTransform(p, tree)
	require.NoError(t, err)
	assert.True(t, seen["Bin(+)"])
	assert.False(t, seen["Lit(1)"])
	assert.False(t, seen["Lit(2)"])
}

type pruningTransform struct {
	traverse.BaseTransform
	seen map[string]bool
}

func (p *pruningTransform) Preorder(n ir.Node) ir.Node {
	p.seen[label(n)] = true
	if _, ok := n.(*ir.BinaryExpr); ok {
		p.Prune()
	}
	return n
}

func TestTransformDAGSharingPreservesOneRebuild(t *testing.T) {
	shared := lit(t, "1")
	tree := &ir.BinaryExpr{Op: "+", X: shared, Y: shared}

	tr := &replaceOneTransform{target: "1", to: lit(t, "9")}
	tr.SetName("replace-shared")

	result, err := traverse.ApplyTransform(tr, tree)
	require.NoError(t, err)
	bin := result.(*ir.BinaryExpr)
	assert.True(t, ir.Same(bin.X, bin.Y), "both slots must resolve to the same memoized replacement")
}
