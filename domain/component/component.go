// Package component provides the component descriptor value type and its
// builder.
package component

import (
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"

	"github.com/fakester/radcomponents/core/schema"
	"golang.org/x/crypto/blake2b"
)

// ResourceType classifies a browser resource.
type ResourceType string

const (
	ResourceJS  ResourceType = "js"
	ResourceCSS ResourceType = "css"
)

// BrowserResource is a client-side asset shipped with a component.
type BrowserResource struct {
	Name string       `json:"name" yaml:"name"`
	Path string       `json:"path" yaml:"path"` // served path, e.g. /res/radcomponents/RadComponents.js
	Type ResourceType `json:"type" yaml:"type"`
}

// PaletteEntry places a component in the palette.
type PaletteEntry struct {
	Variant string            `json:"variant" yaml:"variant"` // empty for the base entry
	Label   string            `json:"label" yaml:"label"`
	Tooltip string            `json:"tooltip" yaml:"tooltip"`
	Icon    string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Extra   map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Descriptor describes one pluggable UI component (immutable value type).
// Build it with a Builder.
type Descriptor struct {
	id              string
	displayName     string
	defaultMetaName string
	schema          *schema.Schema
	paletteCategory string
	paletteEntries  []PaletteEntry
	moduleID        string
	resources       []BrowserResource
}

// ID returns the registry key of the component.
func (d Descriptor) ID() string { return d.id }

// DisplayName returns the palette label of the component.
func (d Descriptor) DisplayName() string { return d.displayName }

// DefaultMetaName returns the meta name used for default instance names and
// resource lookup.
func (d Descriptor) DefaultMetaName() string { return d.defaultMetaName }

// Schema returns the props schema.
func (d Descriptor) Schema() *schema.Schema { return d.schema }

// PaletteCategory returns the palette category.
func (d Descriptor) PaletteCategory() string { return d.paletteCategory }

// PaletteEntries returns a copy of the palette entries.
func (d Descriptor) PaletteEntries() []PaletteEntry {
	entries := make([]PaletteEntry, len(d.paletteEntries))
	for i, e := range d.paletteEntries {
		e.Extra = maps.Clone(e.Extra)
		entries[i] = e
	}
	return entries
}

// ModuleID returns the owning module.
func (d Descriptor) ModuleID() string { return d.moduleID }

// Resources returns a copy of the browser resources.
func (d Descriptor) Resources() []BrowserResource { return slices.Clone(d.resources) }

// IsZero reports whether d was never built.
func (d Descriptor) IsZero() bool { return d.id == "" }

// Record is the serialized form of a Descriptor.
type Record struct {
	ID              string            `json:"id" yaml:"id"`
	DisplayName     string            `json:"displayName" yaml:"displayName"`
	DefaultMetaName string            `json:"defaultMetaName" yaml:"defaultMetaName"`
	PaletteCategory string            `json:"paletteCategory" yaml:"paletteCategory"`
	PaletteEntries  []PaletteEntry    `json:"paletteEntries" yaml:"paletteEntries"`
	ModuleID        string            `json:"moduleId" yaml:"moduleId"`
	Resources       []BrowserResource `json:"resources" yaml:"resources"`
	SchemaPath      string            `json:"schemaPath" yaml:"schemaPath"`
	Schema          json.RawMessage   `json:"schema" yaml:"-"`
}

// Record returns the serialized form of d.
func (d Descriptor) Record() Record {
	r := Record{
		ID:              d.id,
		DisplayName:     d.displayName,
		DefaultMetaName: d.defaultMetaName,
		PaletteCategory: d.paletteCategory,
		PaletteEntries:  d.PaletteEntries(),
		ModuleID:        d.moduleID,
		Resources:       d.Resources(),
	}
	if d.schema != nil {
		r.SchemaPath = d.schema.Path()
		if raw, err := d.schema.MarshalJSON(); err == nil {
			r.Schema = raw
		}
	}
	return r
}

// MarshalJSON encodes d as its Record.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Record())
}

// Fingerprint returns a content hash of d. Equal descriptors have equal
// fingerprints.
func (d Descriptor) Fingerprint() string {
	return d.Record().Fingerprint()
}

// Fingerprint returns the blake2b-256 hash of the record JSON.
func (r Record) Fingerprint() string {
	data, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Equal reports whether d and other describe the same component.
func (d Descriptor) Equal(other Descriptor) bool {
	return d.id == other.id && d.Fingerprint() == other.Fingerprint()
}
