package bt

// Condition succeeds when a blackboard entry equals an expected value.
//
// The read goes through Blackboard.GetValue, so evaluating a condition on a
// key that was never set inserts that key with the value 0.
type Condition struct {
	blackboard *Blackboard
	key        string
	expected   int
}

var _ Node = (*Condition)(nil)

// NewCondition returns a Condition that borrows bb. It panics if bb is nil.
func NewCondition(bb *Blackboard, key string, expected int) *Condition {
	if bb == nil {
		panic("bt.NewCondition: blackboard must not be nil")
	}
	return &Condition{blackboard: bb, key: key, expected: expected}
}

// Key returns the blackboard key the condition reads.
func (c *Condition) Key() string { return c.key }

// Expected returns the value the key must hold for the condition to succeed.
func (c *Condition) Expected() int { return c.expected }

// Execute implements Node.
func (c *Condition) Execute() NodeState {
	if c.blackboard.GetValue(c.key) == c.expected {
		return Success
	}
	return Failure
}

// Action is a named agent action. In this engine it only reports itself to
// its Emitter; executing it always succeeds.
type Action struct {
	name    string
	emitter Emitter
}

var _ Node = (*Action)(nil)

// NewAction returns an Action. A nil emitter discards the emission.
func NewAction(name string, emitter Emitter) *Action {
	if emitter == nil {
		emitter = Discard
	}
	return &Action{name: name, emitter: emitter}
}

// Name returns the action label.
func (a *Action) Name() string { return a.name }

// Execute implements Node.
func (a *Action) Execute() NodeState {
	a.emitter.Emit(Emission{Kind: KindAction, Label: a.name})
	return Success
}

// PrintMessage emits a fixed message and always succeeds.
type PrintMessage struct {
	message string
	emitter Emitter
}

var _ Node = (*PrintMessage)(nil)

// NewPrintMessage returns a PrintMessage. A nil emitter discards the emission.
func NewPrintMessage(message string, emitter Emitter) *PrintMessage {
	if emitter == nil {
		emitter = Discard
	}
	return &PrintMessage{message: message, emitter: emitter}
}

// Message returns the message label.
func (p *PrintMessage) Message() string { return p.message }

// Execute implements Node.
func (p *PrintMessage) Execute() NodeState {
	p.emitter.Emit(Emission{Kind: KindMessage, Label: p.message})
	return Success
}
