// Package tree drives behavior trees built with package bt: it ticks a root
// node, numbers and identifies each tick, logs it, and records a trace span.
package tree

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/btagent/internal/bt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name used for tick spans.
const TracerName = "github.com/joeycumines/btagent/internal/tree"

// Tree pairs a root node with the blackboard it reads.
//
// Ticks must not overlap: a Tree is driven by one goroutine at a time.
type Tree struct {
	root       bt.Node
	blackboard *bt.Blackboard
	logger     *slog.Logger
	tracer     trace.Tracer
	observers  []func(TickResult)
	seq        atomic.Int64
}

// TickResult describes one completed tick.
type TickResult struct {
	ID       uuid.UUID
	Seq      int
	State    bt.NodeState
	Duration time.Duration
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTracerProvider records a span per tick using tp. The default is a
// no-op provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Tree) {
		if tp != nil {
			t.tracer = tp.Tracer(TracerName)
		}
	}
}

// WithTickObserver calls fn after every completed tick, in registration
// order, on the goroutine that ran the tick.
func WithTickObserver(fn func(TickResult)) Option {
	return func(t *Tree) {
		if fn != nil {
			t.observers = append(t.observers, fn)
		}
	}
}

// New returns a Tree. It panics if root or bb is nil.
func New(root bt.Node, bb *bt.Blackboard, opts ...Option) *Tree {
	if root == nil {
		panic("tree.New: root must not be nil")
	}
	if bb == nil {
		panic("tree.New: blackboard must not be nil")
	}
	t := &Tree{
		root:       root,
		blackboard: bb,
		logger:     slog.Default(),
		tracer:     noop.NewTracerProvider().Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root node.
func (t *Tree) Root() bt.Node { return t.root }

// Blackboard returns the blackboard the tree was built against.
func (t *Tree) Blackboard() *bt.Blackboard { return t.blackboard }

// Ticks returns the number of ticks run so far.
func (t *Tree) Ticks() int { return int(t.seq.Load()) }

// Tick executes the root once. If ctx is already done, the tick does not
// start and the context error is returned. Once started, a tick always runs
// to completion.
func (t *Tree) Tick(ctx context.Context) (TickResult, error) {
	if err := ctx.Err(); err != nil {
		return TickResult{}, fmt.Errorf("tick not started: %w", err)
	}

	result := TickResult{
		ID:  uuid.New(),
		Seq: int(t.seq.Add(1)),
	}

	_, span := t.tracer.Start(ctx, "btagent.tick", trace.WithAttributes(
		attribute.Int("btagent.tick.seq", result.Seq),
		attribute.String("btagent.tick.id", result.ID.String()),
	))
	defer span.End()

	start := time.Now()
	result.State = t.root.Execute()
	result.Duration = time.Since(start)

	span.SetAttributes(attribute.String("btagent.tick.state", result.State.String()))
	if result.State == bt.Failure {
		span.SetStatus(codes.Error, "tree failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	t.logger.Debug("[Tree] tick complete",
		"seq", result.Seq,
		"id", result.ID,
		"state", result.State,
		"duration", result.Duration)

	for _, fn := range t.observers {
		fn(result)
	}

	return result, nil
}
