// Package components declares the module's UI components and builds the
// descriptor catalog shared by the designer and gateway hooks.
package components

import (
	"github.com/fakester/radcomponents/domain/component"
)

const (
	// ModuleID identifies this module to the host.
	ModuleID = "org.fakester.radcomponents"

	// URLAlias is the mount path alias: assets are served at /res/radcomponents/*.
	URLAlias = "radcomponents"

	// MountedFolder is the resource folder served under URLAlias.
	MountedFolder = "mounted"

	// Category is the palette category of every component in this module.
	Category = "Rad Components"
)

// ResourcePath returns the served path of a mounted asset.
func ResourcePath(file string) string {
	return "/res/" + URLAlias + "/" + file
}

// BrowserResources are the client assets every component depends on.
var BrowserResources = []component.BrowserResource{
	{Name: "rad-components-js", Path: ResourcePath("RadComponents.js"), Type: component.ResourceJS},
	{Name: "rad-components-css", Path: ResourcePath("RadComponents.css"), Type: component.ResourceCSS},
}

// DesignerResources are the extra assets loaded by the designer only.
var DesignerResources = []component.BrowserResource{
	{Name: "rad-design-components-js", Path: ResourcePath("RadDesignComponents.js"), Type: component.ResourceJS},
}
