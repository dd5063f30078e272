package passes

import (
	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

// Rename is a Modifier that renames every Ident matching a fixed
// table. It mutates the clone the driver hands it directly, the way a
// Modifier hook is meant to.
type Rename struct {
	traverse.BaseModifier
	Table   map[string]string
	Renamed int
}

func NewRename(table map[string]string) *Rename {
	r := &Rename{Table: table}
	r.SetName("rename")
	return r
}

func (r *Rename) Preorder(n ir.Node) bool {
	if id, ok := n.(*ir.Ident); ok {
		if to, ok := r.Table[id.Name]; ok {
			id.Name = to
			r.Renamed++
		}
	}
	return true
}
