// Package idgen provides ID generation for hook instances.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/fakester/radcomponents/ports"
	"github.com/google/uuid"
)

// UUID generates random UUID v4 strings.
type UUID struct{}

// New generates a new UUID v4.
func (UUID) New() string {
	return uuid.NewString()
}

// Prefixed generates "<prefix>-<n>" ids (for tests and logs that need
// stable values).
type Prefixed struct {
	prefix string
	n      atomic.Uint64
}

// NewPrefixed creates a counter-based generator.
func NewPrefixed(prefix string) *Prefixed {
	return &Prefixed{prefix: prefix}
}

// New returns the next id.
func (p *Prefixed) New() string {
	return p.prefix + "-" + strconv.FormatUint(p.n.Add(1), 10)
}

// Ensure interface compliance.
var (
	_ ports.IDGenerator = UUID{}
	_ ports.IDGenerator = (*Prefixed)(nil)
)
