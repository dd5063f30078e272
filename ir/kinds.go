package ir

import (
	"github.com/cockroachdb/apd/v2"
)

// unchanged reports whether every entry of newChildren is, by identity,
// the same node as the corresponding entry of orig. It is the building
// block every concrete node's WithChildren uses to implement structural
// sharing (spec §4.D "structural sharing rule").
func unchanged(orig []ChildSlot, newChildren []Node) bool {
	if len(orig) != len(newChildren) {
		return false
	}
	for i, c := range orig {
		if !Same(c.Node, newChildren[i]) {
			return false
		}
	}
	return true
}

// Lit is a numeric literal. Its value is an arbitrary-precision decimal
// so the constant-folding example pass (traverse/passes) can compute
// exact results the way the teacher's own literal evaluator does.
type Lit struct {
	Value *apd.Decimal
}

func NewLit(v *apd.Decimal) *Lit { return &Lit{Value: v} }

func (n *Lit) identity() interface{}     { return n }
func (n *Lit) Kind() Kind                { return KindLit }
func (n *Lit) Children() []ChildSlot     { return nil }
func (n *Lit) WithChildren([]Node) Node  { return n }
func (n *Lit) Clone() Node {
	cp := *n
	return &cp
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

func NewIdent(name string) *Ident { return &Ident{Name: name} }

func (n *Ident) identity() interface{}    { return n }
func (n *Ident) Kind() Kind               { return KindIdent }
func (n *Ident) Children() []ChildSlot    { return nil }
func (n *Ident) WithChildren([]Node) Node { return n }
func (n *Ident) Clone() Node {
	cp := *n
	return &cp
}

// UnaryExpr is `Op X`.
type UnaryExpr struct {
	Op string
	X  Node
}

func (n *UnaryExpr) identity() interface{} { return n }
func (n *UnaryExpr) Kind() Kind            { return KindUnaryExpr }
func (n *UnaryExpr) Children() []ChildSlot {
	return []ChildSlot{{Name: "X", Index: 0, Node: n.X}}
}
func (n *UnaryExpr) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.X = c[0]
	return &cp
}
func (n *UnaryExpr) Clone() Node {
	cp := *n
	return &cp
}

// BinaryExpr is `X Op Y`.
type BinaryExpr struct {
	Op string
	X  Node
	Y  Node
}

func (n *BinaryExpr) identity() interface{} { return n }
func (n *BinaryExpr) Kind() Kind            { return KindBinaryExpr }
func (n *BinaryExpr) Children() []ChildSlot {
	return []ChildSlot{
		{Name: "X", Index: 0, Node: n.X},
		{Name: "Y", Index: 1, Node: n.Y},
	}
}
func (n *BinaryExpr) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.X, cp.Y = c[0], c[1]
	return &cp
}
func (n *BinaryExpr) Clone() Node {
	cp := *n
	return &cp
}

// CallExpr is `Fun(Args...)`.
type CallExpr struct {
	Fun  Node
	Args []Node
}

func (n *CallExpr) identity() interface{} { return n }
func (n *CallExpr) Kind() Kind            { return KindCallExpr }
func (n *CallExpr) Children() []ChildSlot {
	slots := make([]ChildSlot, 0, len(n.Args)+1)
	slots = append(slots, ChildSlot{Name: "Fun", Index: 0, Node: n.Fun})
	for i, a := range n.Args {
		slots = append(slots, ChildSlot{Name: "Args", Index: i, Node: a})
	}
	return slots
}
func (n *CallExpr) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Fun = c[0]
	if len(c) > 1 {
		cp.Args = append([]Node(nil), c[1:]...)
	} else {
		cp.Args = nil
	}
	return &cp
}
func (n *CallExpr) Clone() Node {
	cp := *n
	cp.Args = append([]Node(nil), n.Args...)
	return &cp
}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Node
}

func (n *Block) identity() interface{} { return n }
func (n *Block) Kind() Kind            { return KindBlock }
func (n *Block) Children() []ChildSlot {
	slots := make([]ChildSlot, len(n.Stmts))
	for i, s := range n.Stmts {
		slots[i] = ChildSlot{Name: "Stmts", Index: i, Node: s}
	}
	return slots
}
func (n *Block) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Stmts = append([]Node(nil), c...)
	return &cp
}
func (n *Block) Clone() Node {
	cp := *n
	cp.Stmts = append([]Node(nil), n.Stmts...)
	return &cp
}

// Assign is `Target = Value`.
type Assign struct {
	Target Node
	Value  Node
}

func (n *Assign) identity() interface{} { return n }
func (n *Assign) Kind() Kind            { return KindAssign }
func (n *Assign) Children() []ChildSlot {
	return []ChildSlot{
		{Name: "Target", Index: 0, Node: n.Target},
		{Name: "Value", Index: 1, Node: n.Value},
	}
}
func (n *Assign) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Target, cp.Value = c[0], c[1]
	return &cp
}
func (n *Assign) Clone() Node {
	cp := *n
	return &cp
}

// If is `if Cond Then [else Else]`. Else may be nil.
type If struct {
	Cond Node
	Then Node
	Else Node
}

func (n *If) identity() interface{} { return n }
func (n *If) Kind() Kind            { return KindIf }
func (n *If) Children() []ChildSlot {
	slots := []ChildSlot{
		{Name: "Cond", Index: 0, Node: n.Cond},
		{Name: "Then", Index: 1, Node: n.Then},
	}
	if n.Else != nil {
		slots = append(slots, ChildSlot{Name: "Else", Index: 2, Node: n.Else})
	}
	return slots
}
func (n *If) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Cond, cp.Then = c[0], c[1]
	if len(c) > 2 {
		cp.Else = c[2]
	} else {
		cp.Else = nil
	}
	return &cp
}
func (n *If) Clone() Node {
	cp := *n
	return &cp
}

// Loop is `while Cond Body`.
type Loop struct {
	Cond Node
	Body Node
}

func (n *Loop) identity() interface{} { return n }
func (n *Loop) Kind() Kind            { return KindLoop }
func (n *Loop) Children() []ChildSlot {
	return []ChildSlot{
		{Name: "Cond", Index: 0, Node: n.Cond},
		{Name: "Body", Index: 1, Node: n.Body},
	}
}
func (n *Loop) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Cond, cp.Body = c[0], c[1]
	return &cp
}
func (n *Loop) Clone() Node {
	cp := *n
	return &cp
}

// Return is `return [Value]`. Value may be nil.
type Return struct {
	Value Node
}

func (n *Return) identity() interface{} { return n }
func (n *Return) Kind() Kind            { return KindReturn }
func (n *Return) Children() []ChildSlot {
	if n.Value == nil {
		return nil
	}
	return []ChildSlot{{Name: "Value", Index: 0, Node: n.Value}}
}
func (n *Return) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	if len(c) > 0 {
		cp.Value = c[0]
	} else {
		cp.Value = nil
	}
	return &cp
}
func (n *Return) Clone() Node {
	cp := *n
	return &cp
}

// Jump is a non-lexical transfer of control to a named Label (goto).
type Jump struct {
	Target string
}

func (n *Jump) identity() interface{}    { return n }
func (n *Jump) Kind() Kind               { return KindJump }
func (n *Jump) Children() []ChildSlot    { return nil }
func (n *Jump) WithChildren([]Node) Node { return n }
func (n *Jump) Clone() Node {
	cp := *n
	return &cp
}

// Label names a statement as the target of zero or more Jumps.
type Label struct {
	Name string
	Stmt Node
}

func (n *Label) identity() interface{} { return n }
func (n *Label) Kind() Kind            { return KindLabel }
func (n *Label) Children() []ChildSlot {
	return []ChildSlot{{Name: "Stmt", Index: 0, Node: n.Stmt}}
}
func (n *Label) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Stmt = c[0]
	return &cp
}
func (n *Label) Clone() Node {
	cp := *n
	return &cp
}

// Field is a name/value pair inside a StructLit.
type Field struct {
	Name  string
	Value Node
}

func (n *Field) identity() interface{} { return n }
func (n *Field) Kind() Kind            { return KindField }
func (n *Field) Children() []ChildSlot {
	return []ChildSlot{{Name: "Value", Index: 0, Node: n.Value}}
}
func (n *Field) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Value = c[0]
	return &cp
}
func (n *Field) Clone() Node {
	cp := *n
	return &cp
}

// StructLit is an ordered set of Fields. Two fields may share the exact
// same Value node identity (a DAG).
type StructLit struct {
	Fields []*Field
}

func (n *StructLit) identity() interface{} { return n }
func (n *StructLit) Kind() Kind            { return KindStructLit }
func (n *StructLit) Children() []ChildSlot {
	slots := make([]ChildSlot, len(n.Fields))
	for i, f := range n.Fields {
		slots[i] = ChildSlot{Name: "Fields", Index: i, Node: f}
	}
	return slots
}
func (n *StructLit) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	fields := make([]*Field, len(c))
	for i, node := range c {
		f, ok := node.(*Field)
		if !ok {
			panic("ir: StructLit.WithChildren given a non-Field child")
		}
		fields[i] = f
	}
	cp.Fields = fields
	return &cp
}
func (n *StructLit) Clone() Node {
	cp := *n
	cp.Fields = append([]*Field(nil), n.Fields...)
	return &cp
}

// Program is the root of a translation unit: an ordered list of
// top-level declarations/statements.
type Program struct {
	Decls []Node
}

func (n *Program) identity() interface{} { return n }
func (n *Program) Kind() Kind            { return KindProgram }
func (n *Program) Children() []ChildSlot {
	slots := make([]ChildSlot, len(n.Decls))
	for i, d := range n.Decls {
		slots[i] = ChildSlot{Name: "Decls", Index: i, Node: d}
	}
	return slots
}
func (n *Program) WithChildren(c []Node) Node {
	if unchanged(n.Children(), c) {
		return n
	}
	cp := *n
	cp.Decls = append([]Node(nil), c...)
	return &cp
}
func (n *Program) Clone() Node {
	cp := *n
	cp.Decls = append([]Node(nil), n.Decls...)
	return &cp
}
