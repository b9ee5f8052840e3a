package lifecycle

import (
	"errors"
	"time"
)

// ErrRegistryUnavailable reports that the host did not expose a component
// registry.
var ErrRegistryUnavailable = errors.New("component registry unavailable")

// Outcome classifies how a lifecycle step completed.
type Outcome int

const (
	// OutcomeOK means every descriptor was registered or removed.
	OutcomeOK Outcome = iota

	// OutcomeDegraded means the step completed without doing all of its
	// work. The module keeps running; Reason says why.
	OutcomeDegraded

	// OutcomeNoop means there was nothing to do.
	OutcomeNoop
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// Result reports what a startup or shutdown did.
type Result struct {
	Outcome Outcome
	IDs     []string // ids registered (startup) or removed (shutdown)
	Reason  error    // set for degraded and some noop results
	At      time.Time
}

// Degraded reports whether the step completed in a degraded state.
func (r Result) Degraded() bool {
	return r.Outcome == OutcomeDegraded
}
