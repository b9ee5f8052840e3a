package components

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/fakester/radcomponents/core/schema"
	"github.com/fakester/radcomponents/resources"
)

func TestLoad_Bundled(t *testing.T) {
	c, err := Load(resources.FS())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	d, ok := c.Get(ToastSileoID)
	if !ok {
		t.Fatalf("Get(%q) not found", ToastSileoID)
	}
	if d.DisplayName() != "05 ToastSileo" {
		t.Errorf("DisplayName() = %q", d.DisplayName())
	}
	if d.DefaultMetaName() != "toastSileo" {
		t.Errorf("DefaultMetaName() = %q", d.DefaultMetaName())
	}
	if d.ModuleID() != ModuleID {
		t.Errorf("ModuleID() = %q", d.ModuleID())
	}
	if d.PaletteCategory() != Category {
		t.Errorf("PaletteCategory() = %q", d.PaletteCategory())
	}
	if d.Schema().Path() != "/toastsileo/toastsileo.props.json" {
		t.Errorf("Schema().Path() = %q", d.Schema().Path())
	}

	entries := d.PaletteEntries()
	if len(entries) != 1 || entries[0].Label != "ToastSileo" || entries[0].Variant != "" {
		t.Errorf("PaletteEntries() = %+v", entries)
	}

	res := d.Resources()
	if len(res) != 2 || res[0].Path != "/res/radcomponents/RadComponents.js" || res[1].Path != "/res/radcomponents/RadComponents.css" {
		t.Errorf("Resources() = %+v", res)
	}
}

func TestLoad_MissingSchemaIsFatal(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	if err == nil {
		t.Fatal("Load() should fail without the schema resource")
	}

	var loadErr *schema.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *schema.LoadError", err)
	}
	if loadErr.Path != "/toastsileo/toastsileo.props.json" {
		t.Errorf("LoadError.Path = %q", loadErr.Path)
	}
}

func TestBundledAssetsExist(t *testing.T) {
	mounted := resources.Mounted()
	for _, res := range append(BrowserResources, DesignerResources...) {
		name := res.Path[len("/res/"+URLAlias+"/"):]
		if _, err := mounted.Open(name); err != nil {
			t.Errorf("mounted asset %s missing: %v", name, err)
		}
	}
}

func TestNewCatalog_ReplacesDuplicates(t *testing.T) {
	c, err := Load(resources.FS())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d, _ := c.Get(ToastSileoID)

	merged := NewCatalog(d, d)
	if merged.Len() != 1 {
		t.Errorf("Len() = %d, want 1", merged.Len())
	}
	if ids := merged.IDs(); len(ids) != 1 || ids[0] != ToastSileoID {
		t.Errorf("IDs() = %v", ids)
	}
}
