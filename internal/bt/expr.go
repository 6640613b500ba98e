package bt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprCondition is a condition leaf backed by an expr-lang expression. The
// expression sees every blackboard key as a variable:
//
//	PlayerDetected == 1 && Ammo > 0
//	Health < 20 || Fleeing == 1
//
// Keys that are not on the blackboard evaluate to nil and are not inserted.
// Evaluation errors resolve to Failure; LastError reports the most recent
// one.
type ExprCondition struct {
	blackboard *Blackboard
	expression string
	program    *vm.Program

	mu      sync.Mutex
	lastErr error
}

var _ Node = (*ExprCondition)(nil)

// NewExprCondition compiles expression and returns a condition reading bb.
func NewExprCondition(bb *Blackboard, expression string) (*ExprCondition, error) {
	if bb == nil {
		panic("bt.NewExprCondition: blackboard must not be nil")
	}
	if expression == "" {
		return nil, errors.New("expression cannot be empty")
	}
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	return &ExprCondition{
		blackboard: bb,
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression.
func (c *ExprCondition) Expression() string { return c.expression }

// Execute implements Node.
func (c *ExprCondition) Execute() NodeState {
	snapshot := c.blackboard.Snapshot()
	env := make(map[string]any, len(snapshot))
	for k, v := range snapshot {
		env[k] = v
	}

	result, err := expr.Run(c.program, env)
	if err == nil {
		if b, ok := result.(bool); ok {
			c.setLastError(nil)
			if b {
				return Success
			}
			return Failure
		}
		err = fmt.Errorf("expression returned non-boolean result: %T", result)
	}

	c.setLastError(err)
	slog.Warn("[BT] ExprCondition evaluation error",
		"expression", c.expression,
		"error", err)
	return Failure
}

// LastError returns the error from the most recent Execute, or nil if it
// evaluated cleanly.
func (c *ExprCondition) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *ExprCondition) setLastError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
