package traverse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

// assignCounter is a ControlFlowVisitor that records assigned names and
// how many times a shared join node's Preorder actually fired.
type assignCounter struct {
	traverse.BaseInspector
	assigned  map[string]bool
	joinHits  *int
	joinLabel string
}

func newAssignCounter(hits *int) *assignCounter {
	a := &assignCounter{assigned: map[string]bool{}, joinHits: hits, joinLabel: "J"}
	a.SetName("assign-counter")
	a.SetJoinFlows(true)
	return a
}

func (a *assignCounter) Preorder(n ir.Node) bool {
	if asn, ok := n.(*ir.Assign); ok {
		if id, ok := asn.Target.(*ir.Ident); ok {
			a.assigned[id.Name] = true
		}
	}
	if id, ok := n.(*ir.Ident); ok && id.Name == a.joinLabel {
		*a.joinHits++
	}
	return true
}

func (a *assignCounter) FlowClone() traverse.ControlFlowVisitor {
	cp := &assignCounter{assigned: map[string]bool{}, joinHits: a.joinHits, joinLabel: a.joinLabel}
	for k, v := range a.assigned {
		cp.assigned[k] = v
	}
	return cp
}

func (a *assignCounter) FlowMerge(other traverse.ControlFlowVisitor) {
	o, ok := other.(*assignCounter)
	if !ok {
		return
	}
	for k, v := range o.assigned {
		if v {
			a.assigned[k] = true
		}
	}
}

// S6 — Join merge. J is literally shared between both arms' statement
// lists, the demonstration IR's equivalent of a control-flow graph
// join point (a node with two incoming edges).
func TestS6JoinMerge(t *testing.T) {
	j := ir.NewIdent("J")
	thenArm := &ir.Block{Stmts: []ir.Node{
		&ir.Assign{Target: ir.NewIdent("a"), Value: lit(t, "1")},
		j,
	}}
	elseArm := &ir.Block{Stmts: []ir.Node{
		&ir.Assign{Target: ir.NewIdent("b"), Value: lit(t, "2")},
		j,
	}}
	tree := &ir.If{Cond: ir.NewIdent("cond"), Then: thenArm, Else: elseArm}

	hits := 0
	a := newAssignCounter(&hits)
	_, err := traverse.ApplyInspector(a, tree)
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "the shared join node's hook must fire exactly once")
	assert.Equal(t, map[string]bool{"a": true, "b": true}, a.assigned)
}

func TestCheckCloneRejectsSharedIdentity(t *testing.T) {
	a := newAssignCounter(new(int))
	err := traverse.CheckClone(a, a)
	assert.Error(t, err)

	clone := a.FlowClone()
	assert.NoError(t, traverse.CheckClone(a, clone))
}

func TestGuardGlobalRestoresOnUnwind(t *testing.T) {
	b := &traverse.BaseInspector{}
	b.SetName("guard-test")

	_, ok := b.CheckGlobal("x")
	assert.False(t, ok)

	func() {
		restore := b.GuardGlobal("x", 1)
		defer restore()
		v, ok := b.CheckGlobal("x")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		func() {
			inner := b.GuardGlobal("x", 2)
			defer inner()
			v, _ := b.CheckGlobal("x")
			assert.Equal(t, 2, v)
		}()

		v, _ = b.CheckGlobal("x")
		assert.Equal(t, 1, v, "inner scope's guard must restore the outer value on unwind")
	}()

	_, ok = b.CheckGlobal("x")
	assert.False(t, ok, "outermost guard must erase the global on unwind")
}
