package traverse

import (
	"errors"

	"github.com/irtree/walk/ir"
)

// ForAllMatching runs fn on every node reachable from root for which
// pred is true (every node when pred is nil), read-only, in preorder
// (the Go analogue of the original's forAllMatching<T> template, with a
// runtime predicate in place of a compile-time node-kind parameter).
func ForAllMatching(root ir.Node, pred func(n ir.Node) bool, fn func(n ir.Node)) error {
	a := &forAllAdaptor{pred: pred, fn: fn}
	_, err := ApplyInspector(a, root)
	return err
}

type forAllAdaptor struct {
	BaseInspector
	pred func(n ir.Node) bool
	fn   func(n ir.Node)
}

func (a *forAllAdaptor) Preorder(n ir.Node) bool {
	if a.pred == nil || a.pred(n) {
		a.fn(n)
	}
	return true
}

// ModifyAllMatching runs fn on every node matching pred, giving fn the
// chance to mutate it in place on its owned clone, and returns the
// (possibly rebuilt) root.
func ModifyAllMatching(root ir.Node, pred func(n ir.Node) bool, fn func(n ir.Node)) (ir.Node, error) {
	a := &modifyAllAdaptor{pred: pred, fn: fn}
	return ApplyModifier(a, root)
}

type modifyAllAdaptor struct {
	BaseModifier
	pred func(n ir.Node) bool
	fn   func(n ir.Node)
}

func (a *modifyAllAdaptor) Preorder(n ir.Node) bool {
	if a.pred == nil || a.pred(n) {
		a.fn(n)
	}
	return true
}

// TransformAllMatching rebuilds every node matching pred by running fn
// on it postorder, and returns the new root with structural sharing
// preserved everywhere fn made no change.
func TransformAllMatching(root ir.Node, pred func(n ir.Node) bool, fn func(n ir.Node) ir.Node) (ir.Node, error) {
	a := &transformAllAdaptor{pred: pred, fn: fn}
	return ApplyTransform(a, root)
}

type transformAllAdaptor struct {
	BaseTransform
	pred func(n ir.Node) bool
	fn   func(n ir.Node) ir.Node
}

func (a *transformAllAdaptor) Postorder(n ir.Node) ir.Node {
	if a.pred == nil || a.pred(n) {
		return a.fn(n)
	}
	return n
}

// Trigger discriminates why a Backtracker unwound a traversal (spec
// §4.G "Backtrack triggers"): OK means the pass reached a deliberate
// early-exit, Other covers every other propagated failure.
type Trigger int

const (
	TriggerOK Trigger = iota
	TriggerOther
)

// Backtracker is implemented by a pass's driving error type to let the
// core distinguish an intentional early exit from a real failure
// (the Go analogue of the original's Backtrack::trigger hierarchy).
// A pass that never backtracks doesn't need to implement it; callers
// should use NeverBacktracks as the default via errors.As.
type Backtracker interface {
	error
	BacktrackTrigger() Trigger
}

// NeverBacktracks reports whether err is nil or neither is nor wraps a
// Backtracker, i.e. whether this pass chain has no backtrack triggers
// defined.
func NeverBacktracks(err error) bool {
	if err == nil {
		return true
	}
	var bt Backtracker
	return !errors.As(err, &bt)
}

// Access describes whether a child slot is read from, written to, or
// both by the surrounding traversal step (the Go analogue of
// P4WriteContext::isWrite/isRead). Passes that care about read/write
// position — e.g. a def-use pass — consult it via AccessOf.
type Access struct {
	Write bool
	Read  bool
}

func (a Access) IsWrite() bool { return a.Write }
func (a Access) IsRead() bool  { return a.Read }

// writeSlots names, per parent kind, which child slots are write-only
// targets. A parent kind absent from this table is unknown to the
// access model entirely and defaults conservatively to both read and
// write, matching the original's default when a visitor can't prove
// otherwise; a parent kind present here but a slot name absent from
// its entry defaults to read-only, except under Label, whose slots are
// neither read nor written.
var writeSlots = map[ir.Kind]map[string]bool{
	ir.KindAssign: {"Target": true},
	ir.KindLabel:  {}, // Stmt is neither read nor written, just named
}

// AccessOf reports the read/write nature of the child slot slotName of
// a parent of kind parentKind. An empty slotName is read-only; a slot
// marked in writeSlots is write-only; other slots of a listed kind are
// read-only, except Label's, which are neither; a parent kind not listed
// is conservatively both read and write.
func AccessOf(parentKind ir.Kind, slotName string) Access {
	if slotName == "" {
		return Access{Read: true}
	}
	if slots, ok := writeSlots[parentKind]; ok {
		if slots[slotName] {
			return Access{Write: true}
		}
		if parentKind == ir.KindLabel {
			return Access{}
		}
		return Access{Read: true}
	}
	return Access{Read: true, Write: true}
}
