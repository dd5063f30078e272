package traverse

import (
	"fmt"
	"sort"

	"github.com/mpvl/unique"
	"golang.org/x/xerrors"

	"github.com/irtree/walk/ir"
)

// ControlFlowVisitor layers join-point merging on top of Inspector
// (spec §4.F). A node reached by more than one edge in the DAG is a
// join point: the driver defers the real visit until every incoming
// edge has arrived, cloning the pass's flow-sensitive state once per
// edge and folding the clones together with FlowMerge before the
// shared node is actually visited.
type ControlFlowVisitor interface {
	Inspector
	// FlowClone returns a copy of the pass's per-path flow state, taken
	// at the point an edge reaches a join point.
	FlowClone() ControlFlowVisitor
	// FlowMerge folds another edge's cloned state into the receiver,
	// which stands in for the merged state from here on.
	FlowMerge(other ControlFlowVisitor)
}

// JoinPointFilter lets a pass exempt specific nodes from join-point
// deferral (the Go analogue of filter_join_point) even though they
// have more than one incoming edge — useful for nodes whose semantics
// don't depend on which predecessor reached them.
type JoinPointFilter interface {
	FilterJoinPoint(n ir.Node) bool
}

type cfState struct {
	incoming map[interface{}]int
	arrived  map[interface{}]int
	pending  map[interface{}][]ControlFlowVisitor
	globals  map[string]interface{}
}

// newCFState computes, once per Apply, how many distinct edges lead
// to each node reachable from root (SetupJoinPoints in the original).
// It is a plain reachability walk guarded by a seen-set rather than a
// full traversal, so it terminates on cyclic graphs.
func newCFState(root ir.Node) *cfState {
	cs := &cfState{
		incoming: make(map[interface{}]int),
		arrived:  make(map[interface{}]int),
		pending:  make(map[interface{}][]ControlFlowVisitor),
		globals:  make(map[string]interface{}),
	}
	seen := make(map[interface{}]bool)
	var walk func(n ir.Node)
	walk = func(n ir.Node) {
		if n == nil {
			return
		}
		key := ir.Key(n)
		cs.incoming[key]++
		if seen[key] {
			return
		}
		seen[key] = true

		children := n.Children()
		keys := make([]string, 0, len(children))
		byKey := make(map[string]ir.Node, len(children))
		for _, c := range children {
			if c.Node == nil {
				continue
			}
			s := fmt.Sprintf("%p", ir.Key(c.Node))
			if _, dup := byKey[s]; !dup {
				keys = append(keys, s)
				byKey[s] = c.Node
			}
		}
		for _, s := range debugUniqueKeys(keys) {
			walk(byKey[s])
		}
	}
	walk(root)
	return cs
}

// debugUniqueKeys sorts and de-duplicates a slice of pointer-identity
// strings, mirroring the std::unique-style pass the original used when
// computing a node's distinct predecessor set. unique.Sort assumes its
// input is already sorted and truncates cp in place through the
// pointer it was handed, the way cuelang.org/go's own callers of this
// package use it.
func debugUniqueKeys(keys []string) []string {
	cp := append([]string(nil), keys...)
	sort.Strings(cp)
	unique.Sort(unique.StringSlice{P: &cp})
	return cp
}

// cfJoinFlows is consulted by inspectVisit before a node's normal
// registry bookkeeping. It returns deferred=true when the driver
// should skip visiting n now because other incoming edges haven't
// arrived yet; once the last edge arrives it folds every clone into
// cf and lets the visit proceed.
func cfJoinFlows(cf ControlFlowVisitor, b *BaseInspector, n ir.Node) (deferred bool, err error) {
	cs := b.cf
	if cs == nil {
		return false, nil
	}
	if jf, ok := cf.(JoinPointFilter); ok && jf.FilterJoinPoint(n) {
		return false, nil
	}
	key := ir.Key(n)
	total := cs.incoming[key]
	if total <= 1 {
		return false, nil
	}

	cs.arrived[key]++
	cs.pending[key] = append(cs.pending[key], cf.FlowClone())

	if cs.arrived[key] < total {
		return true, nil
	}

	clones := cs.pending[key]
	delete(cs.pending, key)
	for _, clone := range clones {
		if err := CheckClone(cf, clone); err != nil {
			return false, err
		}
		cf.FlowMerge(clone)
	}
	return false, nil
}

// CheckClone reports an error if clone is not a distinct value from
// orig, the Go analogue of check_clone: a FlowClone implementation
// that returns its receiver instead of a copy would silently corrupt
// every other edge's state once merging starts.
func CheckClone(orig, clone ControlFlowVisitor) error {
	if orig == clone {
		return xerrors.New("traverse: FlowClone must return a value distinct from the receiver")
	}
	return nil
}

// GuardGlobal sets a named global for the caller's dynamic scope and
// returns a restore function; callers are expected to defer it
// immediately (the Go analogue of the original's GuardGlobal RAII
// helper). An empty pass-wide store is created lazily.
func (b *BaseInspector) GuardGlobal(name string, value interface{}) func() {
	cs := b.cfState()
	prev, had := cs.globals[name]
	cs.globals[name] = value
	return func() {
		if had {
			cs.globals[name] = prev
		} else {
			delete(cs.globals, name)
		}
	}
}

// CheckGlobal reports the current value of a named global, if set.
func (b *BaseInspector) CheckGlobal(name string) (interface{}, bool) {
	cs := b.cfState()
	v, ok := cs.globals[name]
	return v, ok
}

// EraseGlobal removes a named global outright rather than restoring a
// previous scope's value.
func (b *BaseInspector) EraseGlobal(name string) {
	delete(b.cfState().globals, name)
}

// ClearGlobals removes every named global.
func (b *BaseInspector) ClearGlobals() {
	cs := b.cfState()
	for k := range cs.globals {
		delete(cs.globals, k)
	}
}

func (b *BaseInspector) cfState() *cfState {
	if b.cf == nil {
		b.cf = &cfState{
			incoming: make(map[interface{}]int),
			arrived:  make(map[interface{}]int),
			pending:  make(map[interface{}][]ControlFlowVisitor),
			globals:  make(map[string]interface{}),
		}
	}
	return b.cf
}
