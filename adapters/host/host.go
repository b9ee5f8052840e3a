// Package host provides a reference implementation of the host contexts
// handed to the module hooks.
package host

import (
	"github.com/fakester/radcomponents/ports"
)

// Rendering is the UI-rendering subsystem of a host process.
type Rendering struct {
	Registry ports.ComponentRegistry
}

// ComponentRegistry returns the registry, or nil when none is exposed.
func (r *Rendering) ComponentRegistry() ports.ComponentRegistry {
	if r == nil || r.Registry == nil {
		return nil
	}
	return r.Registry
}

// Context is a designer or gateway context. Both contexts expose the same
// accessor, so one type serves both.
type Context struct {
	rendering *Rendering
}

// New returns a context whose rendering subsystem exposes reg. A nil reg
// models a subsystem that has not created its registry yet.
func New(reg ports.ComponentRegistry) *Context {
	return &Context{rendering: &Rendering{Registry: reg}}
}

// WithoutRendering returns a context in which the rendering subsystem is
// absent.
func WithoutRendering() *Context {
	return &Context{}
}

// Rendering returns the rendering subsystem if present.
func (c *Context) Rendering() (ports.RenderingContext, bool) {
	if c == nil || c.rendering == nil {
		return nil, false
	}
	return c.rendering, true
}

// Ensure interface compliance.
var (
	_ ports.RenderingContext = (*Rendering)(nil)
	_ ports.DesignerContext  = (*Context)(nil)
	_ ports.GatewayContext   = (*Context)(nil)
)
