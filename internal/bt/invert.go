package bt

import (
	bt "github.com/joeycumines/go-behaviortree"
)

// Invert swaps Success and Failure of its single child. Running passes
// through unchanged.
type Invert struct {
	child Node
	tick  bt.Tick
}

var _ Node = (*Invert)(nil)

// NewInvert returns an Invert owning child. It panics if child is nil.
func NewInvert(child Node) *Invert {
	mustNode("NewInvert", child)
	return &Invert{
		child: child,
		tick:  bt.Not(executeTick(child)),
	}
}

// Child returns the wrapped node.
func (i *Invert) Child() Node {
	return i.child
}

// Execute implements Node.
func (i *Invert) Execute() NodeState {
	return tickChildren(i.tick, nil)
}
