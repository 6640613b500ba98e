package bt

import (
	bt "github.com/joeycumines/go-behaviortree"
)

// Sequence executes its children in order until one does not succeed.
//
// The first Failure or Running child result is returned immediately and the
// remaining children are not executed. If every child succeeds, or there are
// no children, the result is Success.
type Sequence struct {
	children []Node
	nodes    []bt.Node
}

var _ Node = (*Sequence)(nil)

// NewSequence returns a Sequence owning children, in order.
func NewSequence(children ...Node) *Sequence {
	s := new(Sequence)
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

// AddChild appends child. Children cannot be removed.
func (s *Sequence) AddChild(child Node) {
	mustNode("Sequence.AddChild", child)
	s.children = append(s.children, child)
	s.nodes = append(s.nodes, Behavior(child))
}

// Children returns a copy of the child list.
func (s *Sequence) Children() []Node {
	return append([]Node(nil), s.children...)
}

// Execute implements Node.
func (s *Sequence) Execute() NodeState {
	return tickChildren(bt.Sequence, s.nodes)
}

// Selector executes its children in order until one does not fail.
//
// The first Success or Running child result is returned immediately and the
// remaining children are not executed. If every child fails, or there are no
// children, the result is Failure.
type Selector struct {
	children []Node
	nodes    []bt.Node
}

var _ Node = (*Selector)(nil)

// NewSelector returns a Selector owning children, in order.
func NewSelector(children ...Node) *Selector {
	s := new(Selector)
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

// AddChild appends child. Children cannot be removed.
func (s *Selector) AddChild(child Node) {
	mustNode("Selector.AddChild", child)
	s.children = append(s.children, child)
	s.nodes = append(s.nodes, Behavior(child))
}

// Children returns a copy of the child list.
func (s *Selector) Children() []Node {
	return append([]Node(nil), s.children...)
}

// Execute implements Node.
func (s *Selector) Execute() NodeState {
	return tickChildren(bt.Selector, s.nodes)
}
