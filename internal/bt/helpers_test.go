package bt

// stubNode returns a fixed state and counts its executions.
type stubNode struct {
	state NodeState
	calls int
}

func (n *stubNode) Execute() NodeState {
	n.calls++
	return n.state
}

func stub(state NodeState) *stubNode {
	return &stubNode{state: state}
}
