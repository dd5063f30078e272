package traverse

import "github.com/irtree/walk/ir"

// ModifierKindHooks lets a pass register callbacks for one node kind
// instead of switching inside a single untyped hook (spec §9).
type ModifierKindHooks struct {
	Preorder    func(n ir.Node) bool
	Postorder   func(n ir.Node)
	Revisit     func(orig, new ir.Node)
	LoopRevisit func(n ir.Node) error
}

// Modifier mutates a tree in place on owned clones (spec §4.E). The
// driver clones the original before a hook ever sees it, so Preorder
// and Postorder are free to mutate the node they are given; the
// resulting identity is whatever clone (directly or indirectly, via
// child replacement) the hooks produced.
type Modifier interface {
	Pass
	Preorder(n ir.Node) bool
	Postorder(n ir.Node)
	Revisit(orig, new ir.Node)
	LoopRevisit(n ir.Node) error
}

// BaseModifier supplies the default hook set, the change tracker,
// context access, and the per-kind dispatch table.
type BaseModifier struct {
	common
	tracker   *ChangeTracker
	kindHooks map[ir.Kind]ModifierKindHooks
}

func (b *BaseModifier) Preorder(ir.Node) bool { return true }
func (b *BaseModifier) Postorder(ir.Node) {}
func (b *BaseModifier) Revisit(orig, new ir.Node) {}
func (b *BaseModifier) LoopRevisit(n ir.Node) error { return ErrLoopDetected }

func (b *BaseModifier) RegisterKind(k ir.Kind, hooks ModifierKindHooks) {
	if b.kindHooks == nil {
		b.kindHooks = make(map[ir.Kind]ModifierKindHooks)
	}
	b.kindHooks[k] = hooks
}

func (b *BaseModifier) internalsModifier() *BaseModifier { return b }

type hasModifierInternals interface {
	internalsModifier() *BaseModifier
}

// VisitInProgress reports whether n is currently being descended into
// by this pass (the Go analogue of visit_in_progress).
func (b *BaseModifier) VisitInProgress(n ir.Node) bool {
	if b.tracker == nil {
		return false
	}
	return b.tracker.InProgress(n)
}

// RevisitVisited forgets every memoized resolution, so the next
// encounter of any previously-seen node is a fresh visit.
func (b *BaseModifier) RevisitVisited() {
	if b.tracker != nil {
		b.tracker.ResetVisited()
	}
}

// ApplyModifier runs v over root, mutating owned clones (spec
// §4.D/4.E), and returns the (possibly new) root.
func ApplyModifier(v Modifier, root ir.Node) (ir.Node, error) {
	hi, ok := v.(hasModifierInternals)
	if !ok {
		panic("traverse: Modifier value must embed traverse.BaseModifier")
	}
	b := hi.internalsModifier()
	if b.name == "" {
		b.SetName(defaultName(v))
	}
	prof := beginProfile(b.Name())
	defer prof.end()

	b.tracker = newChangeTracker()
	runInitApply(v, root)

	result, err := modifyVisit(v, b, root, "", 0)
	if err != nil {
		runEndApplyFailed(v)
		return nil, wrapAt(err, b.Name(), root)
	}
	runEndApply(v, result)
	return result, nil
}

func modifyVisit(v Modifier, b *BaseModifier, n ir.Node, slotName string, slotIdx int) (ir.Node, error) {
	if n == nil {
		return nil, nil
	}

	action, cached, onceCell := b.tracker.Enter(n, b.VisitDagOnce())
	switch action {
	case changeDone:
		return cached, nil
	case changeLoop:
		if err := callModLoopRevisit(v, b, n); err != nil {
			return n, err
		}
		return n, nil
	case changeRevisit:
		callModRevisit(v, b, n, cached)
		return cached, nil
	}

	clone := n.Clone()
	frame := b.pushFrame(clone, n)
	frame.setSlot(slotName, slotIdx)
	saved := b.visitCurrentOnce
	b.visitCurrentOnce = onceCell

	descend := callModPreorder(v, b, clone)
	current := clone
	if descend && !b.DontForwardChildrenBeforePreorder() {
		slots := current.Children()
		if len(slots) > 0 {
			newChildren := make([]ir.Node, len(slots))
			changed := false
			for i, slot := range slots {
				res, err := modifyVisit(v, b, slot.Node, slot.Name, slot.Index)
				if err != nil {
					b.visitCurrentOnce = saved
					b.popFrame()
					return n, err
				}
				newChildren[i] = res
				if !ir.Same(res, slot.Node) {
					changed = true
				}
			}
			if changed {
				current = current.WithChildren(newChildren)
				frame.node = current
			}
		}
	}
	callModPostorder(v, b, current)

	b.tracker.Finish(n, current, *onceCell)
	b.visitCurrentOnce = saved
	b.popFrame()
	return current, nil
}

func callModPreorder(v Modifier, b *BaseModifier, n ir.Node) bool {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Preorder != nil {
		return hooks.Preorder(n)
	}
	return v.Preorder(n)
}

func callModPostorder(v Modifier, b *BaseModifier, n ir.Node) {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Postorder != nil {
		hooks.Postorder(n)
		return
	}
	v.Postorder(n)
}

func callModRevisit(v Modifier, b *BaseModifier, orig, new_ ir.Node) {
	if hooks, ok := b.kindHooks[orig.Kind()]; ok && hooks.Revisit != nil {
		hooks.Revisit(orig, new_)
		return
	}
	v.Revisit(orig, new_)
}

func callModLoopRevisit(v Modifier, b *BaseModifier, n ir.Node) error {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.LoopRevisit != nil {
		return hooks.LoopRevisit(n)
	}
	return v.LoopRevisit(n)
}
