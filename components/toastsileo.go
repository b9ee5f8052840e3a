package components

import (
	"fmt"

	"github.com/fakester/radcomponents/core/schema"
	"github.com/fakester/radcomponents/domain/component"
)

// ToastSileo identifiers.
const (
	ToastSileoID       = "rad.display.toastsileo"
	ToastSileoMetaName = "toastSileo"
	ToastSileoSchema   = "toastsileo.props.json"
)

// NewToastSileo builds the toast notification descriptor.
func NewToastSileo(loader *schema.Loader) (component.Descriptor, error) {
	s, err := loader.Load(ToastSileoMetaName, ToastSileoSchema)
	if err != nil {
		return component.Descriptor{}, err
	}

	d, err := component.NewBuilder().
		SetPaletteCategory(Category).
		SetID(ToastSileoID).
		SetModuleID(ModuleID).
		SetSchema(s).
		SetName("05 ToastSileo").
		SetDefaultMetaName(ToastSileoMetaName).
		AddPaletteEntry("", "ToastSileo", "Template component scaffold for toast notifications.", "", nil).
		SetResources(BrowserResources).
		Build()
	if err != nil {
		return component.Descriptor{}, fmt.Errorf("build %s: %w", ToastSileoID, err)
	}
	return d, nil
}
