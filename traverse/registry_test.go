package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

func TestRevisitVisitedForcesFreshDescent(t *testing.T) {
	x := ir.NewIdent("x")
	tree := &ir.BinaryExpr{Op: "+", X: x, Y: x}

	r := &resetInspector{}
	r.SetName("reset-test")
	_, err := traverse.ApplyInspector(r, tree)
	require.NoError(t, err)
	assert.Equal(t, 2, r.hits, "calling RevisitVisited from Postorder must force the second X to be seen fresh")
}

type resetInspector struct {
	traverse.BaseInspector
	hits int
}

func (r *resetInspector) Preorder(n ir.Node) bool {
	if _, ok := n.(*ir.Ident); ok {
		r.hits++
	}
	return true
}

func (r *resetInspector) Postorder(n ir.Node) {
	if _, ok := n.(*ir.Ident); ok {
		r.RevisitVisited()
	}
}
