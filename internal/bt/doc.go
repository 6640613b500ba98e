/*
Package bt implements a small behavior tree evaluator for agent logic.

# Architecture

A tree is built bottom-up from Nodes and evaluated by calling Execute on the
root. Each call is one tick: it runs synchronously and depth-first, and it
finishes before returning. Nothing is cached between ticks, so changing the
Blackboard between two calls changes the outcome of the second.

  - go-behaviortree is the traversal engine: Sequence ticks with bt.Sequence,
    Selector with bt.Selector and Invert with bt.Not
  - Blackboard is the shared state, owned by the caller and borrowed by nodes
  - leaves report side effects through an Emitter instead of printing

# Execution Protocol

Every node returns one of three states:

	Success  the node finished and its goal holds
	Failure  the node finished and its goal does not hold
	Running  the node has not finished

Running belongs to the vocabulary so composites can propagate it. No
built-in leaf returns it, and there is no scheduler that resumes a running
node on a later tick.

# Nodes

Composites own an ordered, append-only list of children:

  - Sequence: stops at the first child that does not succeed and returns its
    state; Success when every child succeeds, including when there are none
  - Selector: stops at the first child that does not fail and returns its
    state; Failure when every child fails, including when there are none

Invert owns one child, fixed at construction. It swaps Success and Failure and
passes Running through.

Leaves:

  - Condition: Success iff a blackboard key holds an expected value
  - ExprCondition: Success iff an expr-lang expression over the blackboard
    is true
  - Action, PrintMessage: emit their label once, always Success
  - Script: a goja JavaScript program that may read and write the blackboard
    and emit labels

Constructors reject nil children and nil blackboards with a panic, so an
Invert without a child or a Condition without a board cannot be built.

# Blackboard Reads

GetValue on a key that was never set stores 0 under that key and returns 0.
Condition relies on this, which makes a missing key equal to 0. Lookup is the
strict alternative: it reports whether the key exists and never writes.

# Example

	bb := new(bt.Blackboard)
	bb.SetValue("PlayerDetected", 1)

	var rec bt.Recorder
	root := bt.NewSelector(
		bt.NewInvert(bt.NewSequence(
			bt.NewCondition(bb, "PlayerDetected", 1),
			bt.NewAction("Attaquer", &rec),
		)),
		bt.NewSequence(
			bt.NewAction("Patrouiller", &rec),
			bt.NewPrintMessage("Coucou", &rec),
		),
	)

	root.Execute() // Success, via the second branch
	bb.SetValue("PlayerDetected", 0)
	root.Execute() // Success, via the first branch only

# Interoperability

Behavior turns any Node into a go-behaviortree node, and FromBehavior goes the
other way. This allows go-behaviortree helpers such as bt.Memorize or a
bt.Ticker to drive, or be driven by, these nodes.
*/
package bt
