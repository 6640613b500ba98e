package bt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dop251/goja"
)

// Script status string constants, visible to scripts as globals.
const (
	JSStatusSuccess = "success"
	JSStatusFailure = "failure"
	JSStatusRunning = "running"
)

// Script is a leaf whose behavior is a JavaScript program, run synchronously
// on a goja runtime owned by the node. The program's completion value decides
// the result:
//
//   - "success", "failure", "running" (or the globals of the same name) map to
//     the matching state
//   - true and false map to Success and Failure
//   - anything else, or a thrown exception, is a Failure
//
// Scripts see three more globals: blackboard (see Blackboard.ExposeToJS),
// emit(label) which sends an action Emission, and name, the script name.
//
//	if (blackboard.get("Ammo") > 0) {
//		blackboard.set("Ammo", blackboard.get("Ammo") - 1);
//		emit("Tirer");
//		success;
//	} else {
//		failure;
//	}
//
// Every Execute runs on a fresh goja runtime, so top-level let, const and var
// bindings do not survive between ticks. State that must persist belongs on
// the blackboard. Execute serializes calls.
type Script struct {
	name       string
	program    *goja.Program
	blackboard *Blackboard
	emitter    Emitter

	mu      sync.Mutex
	lastErr error
}

var _ Node = (*Script)(nil)

// NewScript compiles source and binds it to bb and emitter. A nil emitter
// discards emissions.
func NewScript(bb *Blackboard, emitter Emitter, name, source string) (*Script, error) {
	if bb == nil {
		panic("bt.NewScript: blackboard must not be nil")
	}
	if emitter == nil {
		emitter = Discard
	}
	program, err := goja.Compile(name, source, true)
	if err != nil {
		return nil, fmt.Errorf("compile script %q: %w", name, err)
	}
	return &Script{
		name:       name,
		program:    program,
		blackboard: bb,
		emitter:    emitter,
	}, nil
}

// newRuntime returns a runtime with the script globals installed.
func (s *Script) newRuntime() (*goja.Runtime, error) {
	vm := goja.New()
	globals := map[string]any{
		"blackboard": s.blackboard.ExposeToJS(vm),
		"emit": func(label string) {
			s.emitter.Emit(Emission{Kind: KindAction, Label: label})
		},
		"name":    s.name,
		"success": JSStatusSuccess,
		"failure": JSStatusFailure,
		"running": JSStatusRunning,
	}
	for k, v := range globals {
		if err := vm.Set(k, v); err != nil {
			return nil, fmt.Errorf("set global %s: %w", k, err)
		}
	}
	return vm, nil
}

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Execute implements Node.
func (s *Script) Execute() NodeState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.run()
	s.lastErr = err
	if err != nil {
		slog.Warn("[BT] script failed", "script", s.name, "error", err)
		return Failure
	}
	return state
}

func (s *Script) run() (state NodeState, err error) {
	defer func() {
		// Go panics raised inside bound functions surface here
		if r := recover(); r != nil {
			state, err = Failure, fmt.Errorf("panic: %v", r)
		}
	}()

	vm, err := s.newRuntime()
	if err != nil {
		return Failure, err
	}
	v, err := vm.RunProgram(s.program)
	if err != nil {
		var ex *goja.Exception
		if errors.As(err, &ex) {
			return Failure, fmt.Errorf("exception: %s", ex.Value().String())
		}
		return Failure, err
	}
	return mapScriptResult(v)
}

func mapScriptResult(v goja.Value) (NodeState, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return Failure, errors.New("script produced no result")
	}
	switch exported := v.Export().(type) {
	case bool:
		if exported {
			return Success, nil
		}
		return Failure, nil
	case string:
		switch exported {
		case JSStatusSuccess:
			return Success, nil
		case JSStatusFailure:
			return Failure, nil
		case JSStatusRunning:
			return Running, nil
		}
		return Failure, fmt.Errorf("unknown status %q", exported)
	default:
		return Failure, fmt.Errorf("unexpected result type %T", exported)
	}
}

// LastError returns the error from the most recent Execute, or nil.
func (s *Script) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
