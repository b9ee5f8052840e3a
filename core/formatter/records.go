package formatter

import (
	"github.com/fakester/radcomponents/domain/component"
)

// ComponentView is the default view of component records.
var ComponentView = View{
	Kind:    "components",
	Columns: []string{"id", "name", "meta_name", "category", "module_id", "schema", "resources"},
}

// ComponentRow flattens a component record for output.
func ComponentRow(r component.Record) map[string]any {
	resources := make([]string, len(r.Resources))
	for i, res := range r.Resources {
		resources[i] = res.Path
	}
	var palette []string
	for _, e := range r.PaletteEntries {
		palette = append(palette, e.Label)
	}

	return map[string]any{
		"id":          r.ID,
		"name":        r.DisplayName,
		"meta_name":   r.DefaultMetaName,
		"category":    r.PaletteCategory,
		"module_id":   r.ModuleID,
		"schema":      r.SchemaPath,
		"resources":   resources,
		"palette":     palette,
		"fingerprint": r.Fingerprint(),
	}
}

// ComponentRows flattens records for output.
func ComponentRows(records []component.Record) []map[string]any {
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		rows[i] = ComponentRow(r)
	}
	return rows
}

// ScopeView summarizes the shared registry per process scope.
var ScopeView = View{
	Kind:    "scopes",
	Columns: []string{"scope", "components", "registered_at"},
}

// DriftView lists components that differ between scopes.
var DriftView = View{
	Kind:    "differences",
	Columns: []string{"id", "designer", "gateway"},
}
