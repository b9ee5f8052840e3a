package components

import (
	"fmt"
	"io/fs"

	"github.com/fakester/radcomponents/core/schema"
	"github.com/fakester/radcomponents/domain/component"
)

// constructors is the definitive list of components shipped by this module,
// in palette order.
var constructors = []func(*schema.Loader) (component.Descriptor, error){
	NewToastSileo,
}

// Catalog is the read-only set of descriptors built for one process.
type Catalog struct {
	descriptors []component.Descriptor
	byID        map[string]int
}

// Load builds every descriptor from the resource bundle. Any schema failure
// is returned as is and must abort process initialisation.
func Load(fsys fs.FS) (*Catalog, error) {
	loader := schema.NewLoader(fsys)

	c := &Catalog{byID: make(map[string]int)}
	for _, build := range constructors {
		d, err := build(loader)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[d.ID()]; dup {
			return nil, fmt.Errorf("component %q declared twice", d.ID())
		}
		c.byID[d.ID()] = len(c.descriptors)
		c.descriptors = append(c.descriptors, d)
	}
	return c, nil
}

// NewCatalog wraps already built descriptors. Later duplicates replace
// earlier ones.
func NewCatalog(descriptors ...component.Descriptor) *Catalog {
	c := &Catalog{byID: make(map[string]int)}
	for _, d := range descriptors {
		if i, ok := c.byID[d.ID()]; ok {
			c.descriptors[i] = d
			continue
		}
		c.byID[d.ID()] = len(c.descriptors)
		c.descriptors = append(c.descriptors, d)
	}
	return c
}

// All returns the descriptors in declaration order.
func (c *Catalog) All() []component.Descriptor {
	out := make([]component.Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}

// IDs returns the component ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.descriptors))
	for i, d := range c.descriptors {
		ids[i] = d.ID()
	}
	return ids
}

// Get returns a descriptor by id.
func (c *Catalog) Get(id string) (component.Descriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return component.Descriptor{}, false
	}
	return c.descriptors[i], true
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	return len(c.descriptors)
}
