// Package passes holds small, self-contained traversal passes that
// exercise each flavor of the traversal core: a Transform that folds
// constant arithmetic, a Modifier that renames identifiers in place, a
// read-only node counter, and a control-flow pass that merges state at
// join points.
package passes

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

// ConstFold folds arithmetic over literal operands bottom-up. Built as
// a Transform, any subtree with no literal-foldable expression in it
// comes back with its original identity untouched.
type ConstFold struct {
	traverse.BaseTransform
	ctx    *apd.Context
	Folded int
}

func NewConstFold() *ConstFold {
	cf := &ConstFold{ctx: apd.BaseContext.WithPrecision(50)}
	cf.SetName("const-fold")
	return cf
}

func (p *ConstFold) Postorder(n ir.Node) ir.Node {
	switch v := n.(type) {
	case *ir.UnaryExpr:
		lit, ok := v.X.(*ir.Lit)
		if !ok {
			return n
		}
		result := new(apd.Decimal)
		switch v.Op {
		case "-":
			if _, err := p.ctx.Neg(result, lit.Value); err != nil {
				return n
			}
		default:
			return n
		}
		p.Folded++
		return ir.NewLit(result)

	case *ir.BinaryExpr:
		lx, okx := v.X.(*ir.Lit)
		ly, oky := v.Y.(*ir.Lit)
		if !okx || !oky {
			return n
		}
		result := new(apd.Decimal)
		var err error
		switch v.Op {
		case "+":
			_, err = p.ctx.Add(result, lx.Value, ly.Value)
		case "-":
			_, err = p.ctx.Sub(result, lx.Value, ly.Value)
		case "*":
			_, err = p.ctx.Mul(result, lx.Value, ly.Value)
		case "/":
			_, err = p.ctx.Quo(result, lx.Value, ly.Value)
		default:
			return n
		}
		if err != nil {
			return n
		}
		p.Folded++
		return ir.NewLit(result)

	default:
		return n
	}
}
