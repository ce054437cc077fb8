package statemachine

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoTransition means the event is not accepted in the current state.
	ErrNoTransition = errors.New("statemachine: no transition for event")
	// ErrRejected means every transition for the event was vetoed by a guard.
	ErrRejected = errors.New("statemachine: transition rejected by guard")
)

// Guard decides whether a transition may run for the data passed to Fire.
type Guard func(ctx context.Context, data any) bool

// Action runs while a transition is applied; an error leaves the state unchanged.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Observer is told about every committed transition, after the lock is released.
type Observer[S, E comparable] func(ctx context.Context, from, to S, event E)

// Transition moves the machine from From to To when On fires and all Guards pass.
type Transition[S, E comparable] struct {
	From    S
	To      S
	On      E
	Guards  []Guard
	Actions []Action[S, E]
}

// Option configures a Machine.
type Option[S, E comparable] func(*Machine[S, E])

// Allow adds a transition guarded by guards.
func Allow[S, E comparable](from, to S, on E, guards ...Guard) Option[S, E] {
	return WithTransition(Transition[S, E]{From: from, To: to, On: on, Guards: guards})
}

// WithTransition adds t. Transitions sharing a state and event are tried in
// the order they were added.
func WithTransition[S, E comparable](t Transition[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		byEvent, ok := m.table[t.From]
		if !ok {
			byEvent = make(map[E][]Transition[S, E])
			m.table[t.From] = byEvent
		}
		byEvent[t.On] = append(byEvent[t.On], t)
	}
}

// WithObserver registers o; nil is ignored.
func WithObserver[S, E comparable](o Observer[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// Machine is a finite-state machine safe for concurrent use.
type Machine[S, E comparable] struct {
	mu        sync.Mutex
	initial   S
	current   S
	table     map[S]map[E][]Transition[S, E]
	observers []Observer[S, E]
}

// New creates a machine in initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial: initial,
		current: initial,
		table:   make(map[S]map[E][]Transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// Can reports whether Fire would succeed, without running actions.
func (m *Machine[S, E]) Can(ctx context.Context, event E, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.match(ctx, event, data)
	return err == nil
}

// Fire applies the first transition for event whose guards accept data.
// The returned error wraps ErrNoTransition, ErrRejected or an action's error.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	from := m.current
	t, err := m.match(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, t.To, event, data); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("statemachine: %v -> %v on %v: %w", from, t.To, event, err)
		}
	}
	m.current = t.To
	observers := m.observers
	m.mu.Unlock()

	for _, o := range observers {
		o(ctx, from, t.To, event)
	}
	return nil
}

// Reset returns to the initial state without running actions or observers.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}

// match returns the transition to apply. Caller holds the lock.
func (m *Machine[S, E]) match(ctx context.Context, event E, data any) (Transition[S, E], error) {
	candidates := m.table[m.current][event]
	if len(candidates) == 0 {
		return Transition[S, E]{}, fmt.Errorf("%w: %v in %v", ErrNoTransition, event, m.current)
	}
next:
	for _, t := range candidates {
		for _, g := range t.Guards {
			if g != nil && !g(ctx, data) {
				continue next
			}
		}
		return t, nil
	}
	return Transition[S, E]{}, fmt.Errorf("%w: %v in %v", ErrRejected, event, m.current)
}
