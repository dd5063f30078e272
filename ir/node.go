// Package ir defines the minimal node capability the traversal core
// consumes (spec §6) along with a small demonstration IR used by the
// traverse package's tests, example passes, and CLI.
//
// Node kinds, fields, and constructors are collaborators, not part of
// the traversal core itself: the core never switches on a concrete Go
// type, only on the capability interface below.
package ir

// Kind is a runtime-dispatchable tag for a Node's concrete type.
type Kind uint16

// The demonstration IR's kinds. A real framework would have many more;
// this set is large enough to exercise every traversal property in
// spec.md §8 (binary/unary/call expressions, blocks, control flow with
// join points, non-lexical jumps, and DAG-shared literals).
const (
	KindInvalid Kind = iota
	KindProgram
	KindBlock
	KindLit
	KindIdent
	KindUnaryExpr
	KindBinaryExpr
	KindCallExpr
	KindAssign
	KindIf
	KindLoop
	KindReturn
	KindJump
	KindLabel
	KindField
	KindStructLit
)

//go:generate stringer -type=Kind

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "Block"
	case KindLit:
		return "Lit"
	case KindIdent:
		return "Ident"
	case KindUnaryExpr:
		return "UnaryExpr"
	case KindBinaryExpr:
		return "BinaryExpr"
	case KindCallExpr:
		return "CallExpr"
	case KindAssign:
		return "Assign"
	case KindIf:
		return "If"
	case KindLoop:
		return "Loop"
	case KindReturn:
		return "Return"
	case KindJump:
		return "Jump"
	case KindLabel:
		return "Label"
	case KindField:
		return "Field"
	case KindStructLit:
		return "StructLit"
	default:
		return "Invalid"
	}
}

// ChildSlot names one child reference of a Node, in the node's
// declared, deterministic enumeration order (spec §3, context frame
// child_index/child_name).
type ChildSlot struct {
	Name  string
	Index int
	Node  Node
}

// Node is the capability the traversal core requires of every IR value
// (spec §6). Implementations are expected to be small value-like types
// wrapping a pointer for identity; equal value does not imply equal
// identity, and the core reasons about identity exclusively.
type Node interface {
	// Kind reports the runtime type tag used for kind-tests and for the
	// traversal core's per-kind dispatch table.
	Kind() Kind

	// Children enumerates this node's immediate child slots in
	// declaration order. A leaf returns nil.
	Children() []ChildSlot

	// WithChildren returns a node identical to the receiver except that
	// its child slots are replaced, positionally, by newChildren (which
	// must have the same length as Children()). If every entry of
	// newChildren is identical (by identity) to the corresponding
	// current child, WithChildren may return the receiver unchanged;
	// this is what lets Transform preserve structural sharing.
	WithChildren(newChildren []Node) Node

	// Clone returns a shallow copy of the receiver with a new identity,
	// used by Modifier before a node is ever exposed to a hook.
	Clone() Node
}

// Same reports whether a and b are the same node by identity. Nodes are
// Go interface values wrapping pointers, so two Nodes are the same iff
// their dynamic pointers are equal. Two nil Nodes are Same; a nil Node
// is never Same as a non-nil one.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	pa, oka := identity(a)
	pb, okb := identity(b)
	if !oka || !okb {
		return a == b
	}
	return pa == pb
}

// identityKey is implemented by concrete node types so Same (and the
// traversal core's identity-keyed maps) can use the node's own pointer
// as a comparable map key without resorting to reflection.
type identityKey interface {
	identity() interface{}
}

func identity(n Node) (interface{}, bool) {
	ik, ok := n.(identityKey)
	if !ok {
		return nil, false
	}
	return ik.identity(), true
}

// Key returns a value suitable for use as a map key identifying n by
// identity. It is exported so traverse's memo structures (and hook
// authors) can key maps on node identity without depending on ir's
// concrete types.
func Key(n Node) interface{} {
	if n == nil {
		return (*struct{})(nil)
	}
	if k, ok := identity(n); ok {
		return k
	}
	return n
}
