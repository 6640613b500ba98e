package tree

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/joeycumines/btagent/internal/bt"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoTicks is returned when a scenario has no ticks.
	ErrNoTicks = errors.New("scenario has no ticks")
	// ErrUnexpectedState is returned when a tick result does not match the
	// step's expectation.
	ErrUnexpectedState = errors.New("unexpected tick state")
)

// Scenario is a scripted run: an initial blackboard followed by ticks, each
// optionally preceded by blackboard writes.
//
//	name: guard
//	blackboard:
//	  PlayerDetected: 1
//	ticks:
//	  - expect: success
//	  - set: {PlayerDetected: 0}
//	    expect: success
type Scenario struct {
	Name       string         `yaml:"name"`
	Blackboard map[string]int `yaml:"blackboard"`
	Ticks      []Step         `yaml:"ticks"`
}

// Step is one tick of a Scenario.
type Step struct {
	// Set is applied to the blackboard before the tick.
	Set map[string]int `yaml:"set,omitempty"`
	// Expect, if not empty, is the state the tick must return.
	Expect string `yaml:"expect,omitempty"`
}

// DefaultScenario is the reference run of the guard tree: a player is
// detected, then lost.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:       "guard",
		Blackboard: map[string]int{KeyPlayerDetected: 1},
		Ticks: []Step{
			{Expect: "success"},
			{Set: map[string]int{KeyPlayerDetected: 0}, Expect: "success"},
		},
	}
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates a YAML scenario. Unknown fields are
// rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario has ticks and that every expectation is
// a known state.
func (s *Scenario) Validate() error {
	if len(s.Ticks) == 0 {
		return ErrNoTicks
	}
	for i, step := range s.Ticks {
		if step.Expect == "" {
			continue
		}
		if _, err := bt.ParseNodeState(step.Expect); err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
	}
	return nil
}

// Run seeds the tree's blackboard and executes every step in order. It
// stops at the first error; the results of the ticks that ran are returned
// either way. A failed expectation wraps ErrUnexpectedState.
func (s *Scenario) Run(ctx context.Context, t *Tree) ([]TickResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	bb := t.Blackboard()
	apply(bb, s.Blackboard)

	results := make([]TickResult, 0, len(s.Ticks))
	for i, step := range s.Ticks {
		apply(bb, step.Set)

		result, err := t.Tick(ctx)
		if err != nil {
			return results, fmt.Errorf("tick %d: %w", i+1, err)
		}
		results = append(results, result)

		if step.Expect == "" {
			continue
		}
		// validated above
		want, _ := bt.ParseNodeState(step.Expect)
		if result.State != want {
			return results, fmt.Errorf("tick %d: %w: got %s, want %s",
				i+1, ErrUnexpectedState, result.State, want)
		}
	}
	return results, nil
}

// apply writes values to bb in key order, so runs are reproducible.
func apply(bb *bt.Blackboard, values map[string]int) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		bb.SetValue(k, values[k])
	}
}
