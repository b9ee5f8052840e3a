package component

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fakester/radcomponents/core/schema"
)

// ErrIncomplete is wrapped by MissingFieldError.
var ErrIncomplete = errors.New("descriptor incomplete")

// MissingFieldError lists the required fields a Builder was not given.
type MissingFieldError struct {
	Fields []string
}

// Error returns the error message.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrIncomplete, strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrIncomplete.
func (e *MissingFieldError) Unwrap() error {
	return ErrIncomplete
}

// Builder assembles a Descriptor. Every field is required.
type Builder struct {
	d Descriptor
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetPaletteCategory sets the palette category.
func (b *Builder) SetPaletteCategory(category string) *Builder {
	b.d.paletteCategory = category
	return b
}

// SetID sets the registry id.
func (b *Builder) SetID(id string) *Builder {
	b.d.id = id
	return b
}

// SetModuleID sets the owning module id.
func (b *Builder) SetModuleID(moduleID string) *Builder {
	b.d.moduleID = moduleID
	return b
}

// SetSchema sets the props schema.
func (b *Builder) SetSchema(s *schema.Schema) *Builder {
	b.d.schema = s
	return b
}

// SetName sets the display name.
func (b *Builder) SetName(name string) *Builder {
	b.d.displayName = name
	return b
}

// SetDefaultMetaName sets the default meta name.
func (b *Builder) SetDefaultMetaName(metaName string) *Builder {
	b.d.defaultMetaName = metaName
	return b
}

// AddPaletteEntry appends a palette entry. icon and extra may be empty.
func (b *Builder) AddPaletteEntry(variant, label, tooltip, icon string, extra map[string]string) *Builder {
	b.d.paletteEntries = append(b.d.paletteEntries, PaletteEntry{
		Variant: variant,
		Label:   label,
		Tooltip: tooltip,
		Icon:    icon,
		Extra:   maps.Clone(extra),
	})
	return b
}

// SetResources sets the browser resources.
func (b *Builder) SetResources(resources []BrowserResource) *Builder {
	b.d.resources = slices.Clone(resources)
	return b
}

// Build returns the descriptor, or a *MissingFieldError naming every unset
// field.
func (b *Builder) Build() (Descriptor, error) {
	var missing []string
	if b.d.paletteCategory == "" {
		missing = append(missing, "paletteCategory")
	}
	if b.d.id == "" {
		missing = append(missing, "id")
	}
	if b.d.moduleID == "" {
		missing = append(missing, "moduleId")
	}
	if b.d.schema == nil {
		missing = append(missing, "schema")
	}
	if b.d.displayName == "" {
		missing = append(missing, "name")
	}
	if b.d.defaultMetaName == "" {
		missing = append(missing, "defaultMetaName")
	}
	if len(b.d.paletteEntries) == 0 {
		missing = append(missing, "paletteEntry")
	}
	if len(b.d.resources) == 0 {
		missing = append(missing, "resources")
	}
	if len(missing) > 0 {
		return Descriptor{}, &MissingFieldError{Fields: missing}
	}

	d := b.d
	d.paletteEntries = b.d.PaletteEntries()
	d.resources = slices.Clone(b.d.resources)
	return d, nil
}
