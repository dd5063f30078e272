package traverse

import "github.com/irtree/walk/ir"

// TransformKindHooks lets a pass register callbacks for one node kind
// instead of switching inside a single untyped hook (spec §9).
type TransformKindHooks struct {
	Preorder    func(n ir.Node) ir.Node
	Postorder   func(n ir.Node) ir.Node
	Revisit     func(orig, new ir.Node) ir.Node
	LoopRevisit func(n ir.Node) (ir.Node, error)
}

// Transform rebuilds a tree functionally (spec §4.D): Preorder and
// Postorder each return the node that should stand in the result tree,
// and the driver preserves the original's identity wherever nothing
// beneath it changed, giving structural sharing between the input and
// output trees for free.
type Transform interface {
	Pass
	Preorder(n ir.Node) ir.Node
	Postorder(n ir.Node) ir.Node
	Revisit(orig, new ir.Node) ir.Node
	LoopRevisit(n ir.Node) (ir.Node, error)
}

// BaseTransform supplies the default identity hook set, the change
// tracker, context access, and the per-kind dispatch table.
type BaseTransform struct {
	common
	tracker   *ChangeTracker
	kindHooks map[ir.Kind]TransformKindHooks
	pruneNext bool
}

func (b *BaseTransform) Preorder(n ir.Node) ir.Node  { return n }
func (b *BaseTransform) Postorder(n ir.Node) ir.Node { return n }
func (b *BaseTransform) Revisit(orig, new_ ir.Node) ir.Node {
	return new_
}
func (b *BaseTransform) LoopRevisit(n ir.Node) (ir.Node, error) {
	return nil, ErrLoopDetected
}

// Prune tells the driver not to descend into the node Preorder just
// returned; Postorder still runs on it afterward.
func (b *BaseTransform) Prune() {
	b.pruneNext = true
}

func (b *BaseTransform) RegisterKind(k ir.Kind, hooks TransformKindHooks) {
	if b.kindHooks == nil {
		b.kindHooks = make(map[ir.Kind]TransformKindHooks)
	}
	b.kindHooks[k] = hooks
}

func (b *BaseTransform) internalsTransform() *BaseTransform { return b }

type hasTransformInternals interface {
	internalsTransform() *BaseTransform
}

// VisitInProgress reports whether n is currently being descended into
// by this pass.
func (b *BaseTransform) VisitInProgress(n ir.Node) bool {
	if b.tracker == nil {
		return false
	}
	return b.tracker.InProgress(n)
}

// RevisitVisited forgets every memoized resolution.
func (b *BaseTransform) RevisitVisited() {
	if b.tracker != nil {
		b.tracker.ResetVisited()
	}
}

// ApplyTransform runs v over root, returning a new tree that shares
// every unchanged subtree with root (spec §4.D).
func ApplyTransform(v Transform, root ir.Node) (ir.Node, error) {
	hi, ok := v.(hasTransformInternals)
	if !ok {
		panic("traverse: Transform value must embed traverse.BaseTransform")
	}
	b := hi.internalsTransform()
	if b.name == "" {
		b.SetName(defaultName(v))
	}
	prof := beginProfile(b.Name())
	defer prof.end()

	b.tracker = newChangeTracker()
	runInitApply(v, root)

	result, err := transformVisit(v, b, root, "", 0)
	if err != nil {
		runEndApplyFailed(v)
		return nil, wrapAt(err, b.Name(), root)
	}
	runEndApply(v, result)
	return result, nil
}

func transformVisit(v Transform, b *BaseTransform, n ir.Node, slotName string, slotIdx int) (ir.Node, error) {
	if n == nil {
		return nil, nil
	}

	action, cached, onceCell := b.tracker.Enter(n, b.VisitDagOnce())
	switch action {
	case changeDone:
		return cached, nil
	case changeLoop:
		res, err := callLoopRevisitT(v, b, n)
		if err != nil {
			return n, err
		}
		return res, nil
	case changeRevisit:
		return callRevisitT(v, b, n, cached), nil
	}

	frame := b.pushFrame(n, n)
	frame.setSlot(slotName, slotIdx)
	saved := b.visitCurrentOnce
	b.visitCurrentOnce = onceCell

	b.pruneNext = false
	current := callPreorderT(v, b, n)
	pruned := b.pruneNext
	b.pruneNext = false
	frame.node = current

	if current != nil && !pruned && !b.DontForwardChildrenBeforePreorder() {
		slots := current.Children()
		if len(slots) > 0 {
			newChildren := make([]ir.Node, len(slots))
			changed := false
			for i, slot := range slots {
				res, err := transformVisit(v, b, slot.Node, slot.Name, slot.Index)
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

	result := callPostorderT(v, b, current)
	b.tracker.Finish(n, result, *onceCell)
	b.visitCurrentOnce = saved
	b.popFrame()
	return result, nil
}

func callPreorderT(v Transform, b *BaseTransform, n ir.Node) ir.Node {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Preorder != nil {
		return hooks.Preorder(n)
	}
	return v.Preorder(n)
}

func callPostorderT(v Transform, b *BaseTransform, n ir.Node) ir.Node {
	if n == nil {
		return nil
	}
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Postorder != nil {
		return hooks.Postorder(n)
	}
	return v.Postorder(n)
}

func callRevisitT(v Transform, b *BaseTransform, orig, new_ ir.Node) ir.Node {
	if hooks, ok := b.kindHooks[orig.Kind()]; ok && hooks.Revisit != nil {
		return hooks.Revisit(orig, new_)
	}
	return v.Revisit(orig, new_)
}

func callLoopRevisitT(v Transform, b *BaseTransform, n ir.Node) (ir.Node, error) {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.LoopRevisit != nil {
		return hooks.LoopRevisit(n)
	}
	return v.LoopRevisit(n)
}

// AssertUnchanged returns ErrConstReplacement if result is not the
// same identity as original. Pass authors call this after visiting a
// child through a slot that the surrounding code treats as read-only
// (the Go analogue of the original's visit(const IR::Node *const &n)
// overload, which refuses to accept a replacement).
func AssertUnchanged(original, result ir.Node) error {
	if !ir.Same(original, result) {
		return ErrConstReplacement
	}
	return nil
}
