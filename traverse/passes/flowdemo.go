package passes

import (
	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

// AssignedVars tracks which identifiers have been assigned along any
// control-flow path reaching the current point. It is a
// ControlFlowVisitor: a statement shared by both arms of an if/else is
// a join point reached once per arm, and FlowMerge unions the names
// each arm assigned before the shared statement is actually visited.
type AssignedVars struct {
	traverse.BaseInspector
	Assigned map[string]bool
}

func NewAssignedVars() *AssignedVars {
	a := &AssignedVars{Assigned: make(map[string]bool)}
	a.SetName("assigned-vars")
	a.SetJoinFlows(true)
	return a
}

func (a *AssignedVars) Preorder(n ir.Node) bool {
	if asn, ok := n.(*ir.Assign); ok {
		if id, ok := asn.Target.(*ir.Ident); ok {
			a.Assigned[id.Name] = true
		}
	}
	return true
}

// FlowClone snapshots the assigned-variable set for one control-flow
// edge reaching a join point.
func (a *AssignedVars) FlowClone() traverse.ControlFlowVisitor {
	cp := &AssignedVars{Assigned: make(map[string]bool, len(a.Assigned))}
	for k, v := range a.Assigned {
		cp.Assigned[k] = v
	}
	return cp
}

// FlowMerge unions in the names assigned along another edge.
func (a *AssignedVars) FlowMerge(other traverse.ControlFlowVisitor) {
	o, ok := other.(*AssignedVars)
	if !ok {
		return
	}
	for k, v := range o.Assigned {
		if v {
			a.Assigned[k] = true
		}
	}
}
