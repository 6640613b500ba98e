package bt

import (
	"sync"
)

// EmissionKind identifies which kind of leaf produced an Emission.
type EmissionKind string

const (
	KindAction  EmissionKind = "action"
	KindMessage EmissionKind = "message"
)

// Emission is the observable side effect of an Action or PrintMessage leaf.
type Emission struct {
	Kind  EmissionKind
	Label string
}

// String renders the emission the way it is shown on a console, e.g.
// "Action: Patrouiller".
func (e Emission) String() string {
	switch e.Kind {
	case KindAction:
		return "Action: " + e.Label
	case KindMessage:
		return "Message: " + e.Label
	default:
		return string(e.Kind) + ": " + e.Label
	}
}

// Emitter receives emissions from leaf nodes. Emit is called once per leaf
// execution, synchronously, on the goroutine ticking the tree.
type Emitter interface {
	Emit(e Emission)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(e Emission)

// Emit calls f.
func (f EmitterFunc) Emit(e Emission) {
	f(e)
}

// Discard is an Emitter that drops everything.
var Discard Emitter = EmitterFunc(func(Emission) {})

// Recorder is an Emitter that keeps every emission, in order.
type Recorder struct {
	mu        sync.Mutex
	emissions []Emission
}

var _ Emitter = (*Recorder)(nil)

// Emit implements Emitter.
func (r *Recorder) Emit(e Emission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emissions = append(r.emissions, e)
}

// Emissions returns a copy of the recorded emissions.
func (r *Recorder) Emissions() []Emission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Emission(nil), r.emissions...)
}

// Labels returns the rendered form of every recorded emission.
func (r *Recorder) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.emissions))
	for i, e := range r.emissions {
		out[i] = e.String()
	}
	return out
}

// Reset discards the recorded emissions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emissions = nil
}
