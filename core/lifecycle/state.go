// Package lifecycle provides the module hook state machine and the
// registrar that registers descriptors into, and removes them from, a host
// registry.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidTransition is wrapped by TransitionError.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// State is a hook lifecycle state.
type State int

const (
	Unstarted State = iota
	Started
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TransitionError reports a transition the machine does not allow.
type TransitionError struct {
	From State
	To   State
}

// Error returns the error message.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap returns ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Machine tracks a hook's state. Only host callbacks move it forward:
// Unstarted -> Started -> Stopped, or Unstarted -> Stopped when the host
// shuts a module down that never started.
type Machine struct {
	mu    sync.RWMutex
	state State
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Transition moves the machine to the given state.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !allowed(m.state, to) {
		return &TransitionError{From: m.state, To: to}
	}
	m.state = to
	return nil
}

func allowed(from, to State) bool {
	switch from {
	case Unstarted:
		return to == Started || to == Stopped
	case Started:
		return to == Stopped
	default:
		return false
	}
}
