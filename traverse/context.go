package traverse

import "github.com/irtree/walk/ir"

// Frame is one level of in-progress traversal (spec §3 "Context frame").
// Frames are created on descent and destroyed on ascent; they are
// observable only to hooks running within that descent (spec §4.A).
type Frame struct {
	parent     *Frame
	node       ir.Node
	original   ir.Node
	childIndex int
	childName  string
	depth      int
}

// Node returns the node currently being visited: for Modifier/Transform
// this may be a clone or replacement of Original.
func (f *Frame) Node() ir.Node { return f.node }

// Original returns the node as it existed before any replacement on
// this pass.
func (f *Frame) Original() ir.Node { return f.original }

// ChildIndex is the index of the slot this frame's node occupies in its
// parent's child list, as recorded when the frame was pushed (0 at the
// root). It is not updated while this frame's own children are being
// descended into.
func (f *Frame) ChildIndex() int { return f.childIndex }

// ChildName is the textual label of the slot this frame's node occupies
// in its parent ("" at the root). Like ChildIndex, it describes how this
// frame was reached, not which of its own children is being visited.
func (f *Frame) ChildName() string { return f.childName }

// Depth is this frame's distance from the root frame (root = 0).
func (f *Frame) Depth() int { return f.depth }

// Parent returns the enclosing frame, or nil at the root.
func (f *Frame) Parent() *Frame { return f.parent }

func (f *Frame) setSlot(name string, index int) {
	f.childName = name
	f.childIndex = index
}

// findAncestor walks the parent chain for the nearest frame whose node
// (or, if orig is true, original) is of kind k.
func findAncestor(start *Frame, k ir.Kind, orig bool) *Frame {
	for c := start; c != nil; c = c.parent {
		n := c.node
		if orig {
			n = c.original
		}
		if n != nil && n.Kind() == k {
			return c
		}
	}
	return nil
}

// isInContext reports whether identity n appears anywhere on the chain
// starting at (and including) start, as either a node or an original.
func isInContext(start *Frame, n ir.Node) bool {
	for c := start; c != nil; c = c.parent {
		if ir.Same(c.node, n) || ir.Same(c.original, n) {
			return true
		}
	}
	return false
}

// common holds the state every flavor's Base embeds: the live context
// stack, the pass's displayable name and caller back-pointer, the
// traversal flags (spec §4.B/C/D flags), and the per-node visit-once
// override cell the driver wires up before invoking hooks.
//
// It is unexported; BaseInspector, BaseModifier, and BaseTransform each
// embed it and promote its methods, which is how a pass gets context
// access (spec "the stack is the only supported way for hooks to see
// context") without the three flavors sharing a hook-signature type.
type common struct {
	ctxt     *Frame
	name     string
	calledBy Pass

	noVisitDagOnce     bool // visitDagOnce defaults true; see VisitDagOnce()
	dontForwardBeforePre bool
	joinFlows          bool

	visitCurrentOnce *bool
}

// Pass is the identity/telemetry capability every flavor satisfies
// (spec §6 "Identity/name").
type Pass interface {
	Name() string
	SetName(string)
	CalledBy() Pass
	SetCalledBy(Pass)
}

func (c *common) Name() string {
	if c.name == "" {
		return "(unnamed pass)"
	}
	return c.name
}

func (c *common) SetName(name string) { c.name = name }
func (c *common) CalledBy() Pass { return c.calledBy }
func (c *common) SetCalledBy(p Pass) { c.calledBy = p }

// VisitDagOnce reports whether nodes reached more than once in a DAG
// are visited only the first time (default true). Passes flip this
// with SetVisitDagOnce(false) in their constructor, matching the
// original's documented caveat that doing so in a Modifier/Transform
// duplicates any node that gets replaced.
func (c *common) VisitDagOnce() bool { return !c.noVisitDagOnce }
func (c *common) SetVisitDagOnce(b bool) { c.noVisitDagOnce = !b }

func (c *common) DontForwardChildrenBeforePreorder() bool { return c.dontForwardBeforePre }
func (c *common) SetDontForwardChildrenBeforePreorder(b bool) {
	c.dontForwardBeforePre = b
}

func (c *common) JoinFlowsEnabled() bool { return c.joinFlows }
func (c *common) SetJoinFlows(b bool) { c.joinFlows = b }

// GetChildContext returns the frame for the node currently being
// visited (spec "getChildContext").
func (c *common) GetChildContext() *Frame { return c.ctxt }

// GetContext returns the frame of the immediate parent of the node
// currently being visited, or nil at the root.
func (c *common) GetContext() *Frame {
	if c.ctxt == nil {
		return nil
	}
	return c.ctxt.parent
}

// GetOriginal returns the original (pre-replacement) node of the
// current frame.
func (c *common) GetOriginal() ir.Node {
	if c.ctxt == nil {
		return nil
	}
	return c.ctxt.original
}

// GetCurrentNode returns the node passed to preorder/postorder: for
// Modifier/Transform this is a clone or replacement of GetOriginal().
func (c *common) GetCurrentNode() ir.Node {
	if c.ctxt == nil {
		return nil
	}
	return c.ctxt.node
}

// GetChildrenVisited returns the slot index of the node currently being
// visited within its parent (GetChildContext().ChildIndex()), or -1
// outside a traversal.
func (c *common) GetChildrenVisited() int {
	if c.ctxt == nil {
		return -1
	}
	return c.ctxt.childIndex
}

// GetContextDepth returns the depth of the current node's parent, or
// -1 at the root.
func (c *common) GetContextDepth() int {
	if c.ctxt == nil || c.ctxt.parent == nil {
		return -1
	}
	return c.ctxt.parent.depth
}

// FindContext returns the nearest ancestor frame whose current node is
// of kind k. The node currently being visited is not itself a
// candidate; the search starts at its parent.
func (c *common) FindContext(k ir.Kind) *Frame {
	if c.ctxt == nil {
		return nil
	}
	return findAncestor(c.ctxt.parent, k, false)
}

// FindOrigContext returns the nearest ancestor frame whose original
// node is of kind k. Like FindContext, the search starts at the
// parent, not the current frame.
func (c *common) FindOrigContext(k ir.Kind) *Frame {
	if c.ctxt == nil {
		return nil
	}
	return findAncestor(c.ctxt.parent, k, true)
}

// IsInContext reports whether n is anywhere on the current ancestor
// chain (as either a node or an original) — strictly above the node
// currently being visited, not the node itself.
func (c *common) IsInContext(n ir.Node) bool {
	if c.ctxt == nil {
		return false
	}
	return isInContext(c.ctxt.parent, n)
}

// VisitOnce overrides visit-once policy for the current node's
// identity: later encounters of the same identity in this pass will be
// skipped even if the pass-wide default is to revisit. Only meaningful
// from within a preorder/postorder hook.
func (c *common) VisitOnce() {
	if c.visitCurrentOnce != nil {
		*c.visitCurrentOnce = true
	}
}

// VisitAgain is the inverse of VisitOnce: the current node's identity
// will be revisited on every future encounter in this pass.
func (c *common) VisitAgain() {
	if c.visitCurrentOnce != nil {
		*c.visitCurrentOnce = false
	}
}

func (c *common) pushFrame(node, original ir.Node) *Frame {
	depth := 0
	if c.ctxt != nil {
		depth = c.ctxt.depth + 1
	}
	f := &Frame{parent: c.ctxt, node: node, original: original, depth: depth}
	c.ctxt = f
	return f
}

func (c *common) popFrame() {
	if c.ctxt != nil {
		c.ctxt = c.ctxt.parent
	}
}
