// Package irtext is a textual encoding for the demonstration IR in
// package ir, used by the irwalk CLI to read and print trees. It is a
// thin, explicit tagged-union codec rather than a generic reflection-
// based one, because ir.Node carries identity that a naive marshal/
// unmarshal round trip would not preserve (two fields pointing at the
// same child would decode as two distinct clones).
package irtext

import (
	"github.com/cockroachdb/apd/v2"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/irtree/walk/ir"
)

// doc is the wire shape for one node. Which fields are populated
// depends on Kind; unused fields are omitted by yaml's omitempty.
type doc struct {
	Kind string `yaml:"kind"`

	Value string `yaml:"value,omitempty"` // Lit
	Name  string `yaml:"name,omitempty"`  // Ident, Label, Field
	Op    string `yaml:"op,omitempty"`    // UnaryExpr, BinaryExpr
	Target string `yaml:"target,omitempty"` // Jump

	X     *doc  `yaml:"x,omitempty"`
	Y     *doc  `yaml:"y,omitempty"`
	Fun   *doc  `yaml:"fun,omitempty"`
	Args  []*doc `yaml:"args,omitempty"`
	Stmts []*doc `yaml:"stmts,omitempty"`
	Decls []*doc `yaml:"decls,omitempty"`
	Cond  *doc  `yaml:"cond,omitempty"`
	Then  *doc  `yaml:"then,omitempty"`
	Else  *doc  `yaml:"else,omitempty"`
	Body  *doc  `yaml:"body,omitempty"`
	Stmt  *doc  `yaml:"stmt,omitempty"`
	TargetNode *doc `yaml:"targetnode,omitempty"` // Assign.Target
	ValueNode  *doc `yaml:"valuenode,omitempty"`  // Assign.Value, Return.Value, Field.Value
	Fields     []*doc `yaml:"fields,omitempty"`
}

// Marshal renders n as YAML text.
func Marshal(n ir.Node) ([]byte, error) {
	d, err := toDoc(n)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(d)
}

// Unmarshal parses YAML text produced by Marshal (or hand-written in
// the same shape) back into an ir.Node tree. Every decoded node is a
// fresh value; sharing present in the original tree that produced the
// text is not reconstructed; round-tripping a DAG through text always
// yields a tree.
func Unmarshal(data []byte) (ir.Node, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, xerrors.Errorf("irtext: %w", err)
	}
	return fromDoc(&d)
}

func toDoc(n ir.Node) (*doc, error) {
	if n == nil {
		return nil, nil
	}
	switch v := n.(type) {
	case *ir.Lit:
		return &doc{Kind: "lit", Value: v.Value.String()}, nil
	case *ir.Ident:
		return &doc{Kind: "ident", Name: v.Name}, nil
	case *ir.UnaryExpr:
		x, err := toDoc(v.X)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "unary", Op: v.Op, X: x}, nil
	case *ir.BinaryExpr:
		x, err := toDoc(v.X)
		if err != nil {
			return nil, err
		}
		y, err := toDoc(v.Y)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "binary", Op: v.Op, X: x, Y: y}, nil
	case *ir.CallExpr:
		fun, err := toDoc(v.Fun)
		if err != nil {
			return nil, err
		}
		args, err := toDocs(v.Args)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "call", Fun: fun, Args: args}, nil
	case *ir.Block:
		stmts, err := toDocs(v.Stmts)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "block", Stmts: stmts}, nil
	case *ir.Assign:
		t, err := toDoc(v.Target)
		if err != nil {
			return nil, err
		}
		val, err := toDoc(v.Value)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "assign", TargetNode: t, ValueNode: val}, nil
	case *ir.If:
		cond, err := toDoc(v.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toDoc(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := toDoc(v.Else)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "if", Cond: cond, Then: then, Else: els}, nil
	case *ir.Loop:
		cond, err := toDoc(v.Cond)
		if err != nil {
			return nil, err
		}
		body, err := toDoc(v.Body)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "loop", Cond: cond, Body: body}, nil
	case *ir.Return:
		val, err := toDoc(v.Value)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "return", ValueNode: val}, nil
	case *ir.Jump:
		return &doc{Kind: "jump", Target: v.Target}, nil
	case *ir.Label:
		stmt, err := toDoc(v.Stmt)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "label", Name: v.Name, Stmt: stmt}, nil
	case *ir.Field:
		val, err := toDoc(v.Value)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "field", Name: v.Name, ValueNode: val}, nil
	case *ir.StructLit:
		fields := make([]*doc, len(v.Fields))
		for i, f := range v.Fields {
			fd, err := toDoc(f)
			if err != nil {
				return nil, err
			}
			fields[i] = fd
		}
		return &doc{Kind: "struct", Fields: fields}, nil
	case *ir.Program:
		decls, err := toDocs(v.Decls)
		if err != nil {
			return nil, err
		}
		return &doc{Kind: "program", Decls: decls}, nil
	default:
		return nil, xerrors.Errorf("irtext: unsupported node kind %v", n.Kind())
	}
}

func toDocs(nodes []ir.Node) ([]*doc, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*doc, len(nodes))
	for i, n := range nodes {
		d, err := toDoc(n)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func fromDoc(d *doc) (ir.Node, error) {
	if d == nil {
		return nil, nil
	}
	switch d.Kind {
	case "lit":
		v, _, err := apd.NewFromString(d.Value)
		if err != nil {
			return nil, xerrors.Errorf("irtext: bad literal %q: %w", d.Value, err)
		}
		return ir.NewLit(v), nil
	case "ident":
		return ir.NewIdent(d.Name), nil
	case "unary":
		x, err := fromDoc(d.X)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpr{Op: d.Op, X: x}, nil
	case "binary":
		x, err := fromDoc(d.X)
		if err != nil {
			return nil, err
		}
		y, err := fromDoc(d.Y)
		if err != nil {
			return nil, err
		}
		return &ir.BinaryExpr{Op: d.Op, X: x, Y: y}, nil
	case "call":
		fun, err := fromDoc(d.Fun)
		if err != nil {
			return nil, err
		}
		args, err := fromDocs(d.Args)
		if err != nil {
			return nil, err
		}
		return &ir.CallExpr{Fun: fun, Args: args}, nil
	case "block":
		stmts, err := fromDocs(d.Stmts)
		if err != nil {
			return nil, err
		}
		return &ir.Block{Stmts: stmts}, nil
	case "assign":
		t, err := fromDoc(d.TargetNode)
		if err != nil {
			return nil, err
		}
		val, err := fromDoc(d.ValueNode)
		if err != nil {
			return nil, err
		}
		return &ir.Assign{Target: t, Value: val}, nil
	case "if":
		cond, err := fromDoc(d.Cond)
		if err != nil {
			return nil, err
		}
		then, err := fromDoc(d.Then)
		if err != nil {
			return nil, err
		}
		els, err := fromDoc(d.Else)
		if err != nil {
			return nil, err
		}
		return &ir.If{Cond: cond, Then: then, Else: els}, nil
	case "loop":
		cond, err := fromDoc(d.Cond)
		if err != nil {
			return nil, err
		}
		body, err := fromDoc(d.Body)
		if err != nil {
			return nil, err
		}
		return &ir.Loop{Cond: cond, Body: body}, nil
	case "return":
		val, err := fromDoc(d.ValueNode)
		if err != nil {
			return nil, err
		}
		return &ir.Return{Value: val}, nil
	case "jump":
		return &ir.Jump{Target: d.Target}, nil
	case "label":
		stmt, err := fromDoc(d.Stmt)
		if err != nil {
			return nil, err
		}
		return &ir.Label{Name: d.Name, Stmt: stmt}, nil
	case "field":
		val, err := fromDoc(d.ValueNode)
		if err != nil {
			return nil, err
		}
		return &ir.Field{Name: d.Name, Value: val}, nil
	case "struct":
		fields := make([]*ir.Field, len(d.Fields))
		for i, fd := range d.Fields {
			n, err := fromDoc(fd)
			if err != nil {
				return nil, err
			}
			f, ok := n.(*ir.Field)
			if !ok {
				return nil, xerrors.New("irtext: struct field did not decode to a Field")
			}
			fields[i] = f
		}
		return &ir.StructLit{Fields: fields}, nil
	case "program":
		decls, err := fromDocs(d.Decls)
		if err != nil {
			return nil, err
		}
		return &ir.Program{Decls: decls}, nil
	default:
		return nil, xerrors.Errorf("irtext: unknown kind %q", d.Kind)
	}
}

func fromDocs(docs []*doc) ([]ir.Node, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]ir.Node, len(docs))
	for i, d := range docs {
		n, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
