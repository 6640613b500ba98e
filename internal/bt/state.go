package bt

import (
	"fmt"
	"strings"

	bt "github.com/joeycumines/go-behaviortree"
)

// NodeState is the result of a single Execute call.
type NodeState int

const (
	// Success indicates the node completed and its goal holds.
	Success NodeState = iota + 1
	// Failure indicates the node completed and its goal does not hold.
	Failure
	// Running indicates the node has not finished. No built-in leaf produces
	// it; composites and Invert propagate it unchanged.
	Running
)

// String returns the upper-case name of the state, e.g. "SUCCESS".
func (s NodeState) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Running:
		return "RUNNING"
	default:
		return fmt.Sprintf("NodeState(%d)", int(s))
	}
}

// Valid reports whether s is one of the three defined states.
func (s NodeState) Valid() bool {
	return s >= Success && s <= Running
}

// ParseNodeState parses a state name, case-insensitively.
func ParseNodeState(s string) (NodeState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return Success, nil
	case "failure":
		return Failure, nil
	case "running":
		return Running, nil
	default:
		return 0, fmt.Errorf("invalid node state: %q", s)
	}
}

// Status converts s to the equivalent go-behaviortree status. Invalid states
// become bt.Failure.
func (s NodeState) Status() bt.Status {
	switch s {
	case Success:
		return bt.Success
	case Running:
		return bt.Running
	default:
		return bt.Failure
	}
}

// stateFromStatus converts a go-behaviortree status. Anything unknown is
// treated as a failure, as go-behaviortree itself does.
func stateFromStatus(s bt.Status) NodeState {
	switch s {
	case bt.Success:
		return Success
	case bt.Running:
		return Running
	default:
		return Failure
	}
}
