package passes

import (
	"github.com/irtree/walk/ir"
	"github.com/irtree/walk/traverse"
)

// NodeCounter tallies how many nodes of each kind appear in a tree. It
// is the plainest possible Inspector: DAG-shared nodes are counted
// once, by default, like every other Inspector.
type NodeCounter struct {
	traverse.BaseInspector
	Counts map[ir.Kind]int
}

func NewNodeCounter() *NodeCounter {
	c := &NodeCounter{Counts: make(map[ir.Kind]int)}
	c.SetName("node-counter")
	return c
}

func (c *NodeCounter) Preorder(n ir.Node) bool {
	c.Counts[n.Kind()]++
	return true
}
