package bt

import (
	"log/slog"

	bt "github.com/joeycumines/go-behaviortree"
)

// Behavior exposes n as a go-behaviortree leaf. Each tick of the returned
// node calls n.Execute exactly once.
func Behavior(n Node) bt.Node {
	mustNode("Behavior", n)
	return bt.New(executeTick(n))
}

// executeTick returns a bt.Tick that ignores its children and executes n.
func executeTick(n Node) bt.Tick {
	return func([]bt.Node) (bt.Status, error) {
		return n.Execute().Status(), nil
	}
}

// FromBehavior wraps a go-behaviortree node so it can be placed in a tree of
// Nodes. A tick error resolves to Failure and is logged.
func FromBehavior(n bt.Node) Node {
	if n == nil {
		panic("bt.FromBehavior: node must not be nil")
	}
	return behaviorNode{node: n}
}

type behaviorNode struct {
	node bt.Node
}

func (b behaviorNode) Execute() NodeState {
	status, err := b.node.Tick()
	if err != nil {
		slog.Warn("[BT] behavior tick failed", "error", err)
		return Failure
	}
	return stateFromStatus(status)
}

// tickChildren runs a go-behaviortree composite tick over children.
func tickChildren(tick bt.Tick, children []bt.Node) NodeState {
	status, err := tick(children)
	if err != nil {
		// children built by Behavior never return errors
		slog.Warn("[BT] composite tick failed", "error", err)
		return Failure
	}
	return stateFromStatus(status)
}
