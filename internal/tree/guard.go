package tree

import (
	"github.com/joeycumines/btagent/internal/bt"
)

// Blackboard key and labels used by the guard tree.
const (
	KeyPlayerDetected = "PlayerDetected"
	LabelAttack       = "Attaquer"
	LabelPatrol       = "Patrouiller"
	LabelGreeting     = "Coucou"
)

// NewGuard builds the reference guard tree:
//
//	Selector
//	├── Invert
//	│   └── Sequence
//	│       ├── Condition(PlayerDetected == 1)
//	│       └── Action(Attaquer)
//	└── Sequence
//	    ├── Action(Patrouiller)
//	    └── PrintMessage(Coucou)
//
// When a player is detected the guard attacks, the inverted branch fails and
// the guard goes on to patrol. Otherwise the first branch succeeds on its own
// and the patrol branch is skipped.
func NewGuard(bb *bt.Blackboard, emitter bt.Emitter) *bt.Selector {
	root := bt.NewSelector()

	sequence := bt.NewSequence()
	sequence.AddChild(bt.NewCondition(bb, KeyPlayerDetected, 1))
	sequence.AddChild(bt.NewAction(LabelAttack, emitter))
	root.AddChild(bt.NewInvert(sequence))

	sequence = bt.NewSequence()
	sequence.AddChild(bt.NewAction(LabelPatrol, emitter))
	sequence.AddChild(bt.NewPrintMessage(LabelGreeting, emitter))
	root.AddChild(sequence)

	return root
}
