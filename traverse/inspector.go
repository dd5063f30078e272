package traverse

import "github.com/irtree/walk/ir"

// InspectorKindHooks lets a pass register callbacks for one specific
// node kind instead of switching on kind inside a single untyped hook
// (spec §9 "per-kind overrides via dispatch table"). Any nil field
// falls back to the pass's untyped Inspector method for that hook.
type InspectorKindHooks struct {
	Preorder    func(n ir.Node) bool
	Postorder   func(n ir.Node)
	Revisit     func(n ir.Node)
	LoopRevisit func(n ir.Node) error
}

// Inspector is the read-only traversal flavor (spec §4.E). Preorder
// returning false prunes descent into that node's children; Postorder
// always fires afterward unless pruned. Result identity is always the
// input identity — an Inspector never rebuilds the tree.
type Inspector interface {
	Pass
	Preorder(n ir.Node) bool
	Postorder(n ir.Node)
	Revisit(n ir.Node)
	LoopRevisit(n ir.Node) error
}

// BaseInspector supplies the default no-op hook set, the visit-once
// registry, context access (via the embedded common), and the per-kind
// dispatch table. Every concrete Inspector embeds this.
type BaseInspector struct {
	common
	registry  *Registry
	kindHooks map[ir.Kind]InspectorKindHooks
	cf        *cfState
}

func (b *BaseInspector) Preorder(ir.Node) bool { return true }
func (b *BaseInspector) Postorder(ir.Node) {}
func (b *BaseInspector) Revisit(ir.Node) {}
func (b *BaseInspector) LoopRevisit(n ir.Node) error { return ErrLoopDetected }

// RegisterKind installs kind-specific overrides consulted before the
// pass's own Preorder/Postorder/Revisit/LoopRevisit methods.
func (b *BaseInspector) RegisterKind(k ir.Kind, hooks InspectorKindHooks) {
	if b.kindHooks == nil {
		b.kindHooks = make(map[ir.Kind]InspectorKindHooks)
	}
	b.kindHooks[k] = hooks
}

// VisitInProgress reports whether n is currently being descended into
// by this pass.
func (b *BaseInspector) VisitInProgress(n ir.Node) bool {
	if b.registry == nil {
		return false
	}
	return b.registry.InProgress(n)
}

// RevisitVisited forgets every memoized visit, so the next encounter
// of any previously-seen node is treated as fresh.
func (b *BaseInspector) RevisitVisited() {
	if b.registry != nil {
		b.registry.ResetVisited()
	}
}

func (b *BaseInspector) internalsInspector() *BaseInspector { return b }

type hasInspectorInternals interface {
	internalsInspector() *BaseInspector
}

// ApplyInspector runs v over root depth-first, read-only (spec
// §4.D/4.E). On success it returns root's own identity and a nil error;
// if a hook returned an error or the core raised one of the errors in
// §7, it returns nil and that error, wrapped with the pass name.
func ApplyInspector(v Inspector, root ir.Node) (ir.Node, error) {
	hi, ok := v.(hasInspectorInternals)
	if !ok {
		panic("traverse: Inspector value must embed traverse.BaseInspector")
	}
	b := hi.internalsInspector()
	if b.name == "" {
		b.SetName(defaultName(v))
	}
	prof := beginProfile(b.Name())
	defer prof.end()

	b.registry = newRegistry(b.VisitDagOnce())
	if b.JoinFlowsEnabled() {
		if cf, ok := v.(ControlFlowVisitor); ok {
			b.cf = newCFState(root)
			_ = cf
		}
	}
	runInitApply(v, root)

	err := inspectVisit(v, b, root, "", 0)
	if err != nil {
		runEndApplyFailed(v)
		return nil, wrapAt(err, b.Name(), root)
	}
	runEndApply(v, root)
	return root, nil
}

func inspectVisit(v Inspector, b *BaseInspector, n ir.Node, slotName string, slotIdx int) error {
	if n == nil {
		return nil
	}

	if b.JoinFlowsEnabled() {
		if cf, ok := v.(ControlFlowVisitor); ok {
			deferred, err := cfJoinFlows(cf, b, n)
			if err != nil {
				return err
			}
			if deferred {
				return nil
			}
		}
	}

	action, info := b.registry.Enter(n)
	switch action {
	case enterDone:
		return nil
	case enterLoop:
		return callLoopRevisit(v, b, n)
	case enterRevisit:
		callRevisit(v, b, n)
		return nil
	}

	frame := b.pushFrame(n, n)
	frame.setSlot(slotName, slotIdx)
	saved := b.visitCurrentOnce
	b.visitCurrentOnce = &info.visitOnce

	descend := callPreorder(v, b, n)
	if descend {
		if !b.DontForwardChildrenBeforePreorder() {
			for _, slot := range n.Children() {
				if err := inspectVisit(v, b, slot.Node, slot.Name, slot.Index); err != nil {
					b.visitCurrentOnce = saved
					b.popFrame()
					return err
				}
			}
		}
		callPostorder(v, b, n)
	}

	b.registry.Exit(n)
	b.visitCurrentOnce = saved
	b.popFrame()
	return nil
}

func callPreorder(v Inspector, b *BaseInspector, n ir.Node) bool {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Preorder != nil {
		return hooks.Preorder(n)
	}
	return v.Preorder(n)
}

func callPostorder(v Inspector, b *BaseInspector, n ir.Node) {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Postorder != nil {
		hooks.Postorder(n)
		return
	}
	v.Postorder(n)
}

func callRevisit(v Inspector, b *BaseInspector, n ir.Node) {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.Revisit != nil {
		hooks.Revisit(n)
		return
	}
	v.Revisit(n)
}

func callLoopRevisit(v Inspector, b *BaseInspector, n ir.Node) error {
	if hooks, ok := b.kindHooks[n.Kind()]; ok && hooks.LoopRevisit != nil {
		return hooks.LoopRevisit(n)
	}
	return v.LoopRevisit(n)
}
