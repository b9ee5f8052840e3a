// Package license provides the module's activation state value type.
package license

// State is the activation state reported to the host and the browser.
type State struct {
	Activated    bool `json:"isActivated" yaml:"activated"`
	TrialExpired bool `json:"isTrialExpired" yaml:"trial_expired"`
}

// Default returns the state of a free module: activated, never expired.
func Default() State {
	return State{Activated: true, TrialExpired: false}
}

// Usable reports whether the module may run its components.
// This is a PURE function.
func Usable(s State) bool {
	return s.Activated && !s.TrialExpired
}

// Static is a license source that always returns the same state.
type Static State

// LicenseState returns the fixed state.
func (s Static) LicenseState() State {
	return State(s)
}
