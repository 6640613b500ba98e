package bt

// Node is a unit of behavior. Execute evaluates the node against its current
// inputs and must not cache results between calls.
type Node interface {
	Execute() NodeState
}

// NodeFunc adapts a plain function to the Node interface.
type NodeFunc func() NodeState

// Execute calls f.
func (f NodeFunc) Execute() NodeState {
	return f()
}

var _ Node = NodeFunc(nil)

func mustNode(owner string, n Node) {
	if n == nil {
		panic("bt." + owner + ": child node must not be nil")
	}
}
