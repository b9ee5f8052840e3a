package schema

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/fakester/radcomponents/resources"
)

// recordingFS remembers every name opened through it.
type recordingFS struct {
	fs.FS
	opened []string
}

func (r *recordingFS) Open(name string) (fs.File, error) {
	r.opened = append(r.opened, name)
	return r.FS.Open(name)
}

const minimalSchema = `{
	"type": "object",
	"title": "Minimal",
	"properties": {
		"label": { "type": "string", "default": "hello" },
		"count": { "type": "integer", "minimum": 0 }
	}
}`

func TestResourcePath(t *testing.T) {
	got := ResourcePath("toastSileo", "toastsileo.props.json")
	if got != "/toastsileo/toastsileo.props.json" {
		t.Errorf("ResourcePath() = %q, want /toastsileo/toastsileo.props.json", got)
	}
}

func TestLoader_Load_RequestsConventionPath(t *testing.T) {
	rec := &recordingFS{FS: fstest.MapFS{
		"toastsileo/toastsileo.props.json": {Data: []byte(minimalSchema)},
	}}

	s, err := NewLoader(rec).Load("toastSileo", "toastsileo.props.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(rec.opened) != 1 || rec.opened[0] != "toastsileo/toastsileo.props.json" {
		t.Errorf("opened = %v, want [toastsileo/toastsileo.props.json]", rec.opened)
	}
	if s.Path() != "/toastsileo/toastsileo.props.json" {
		t.Errorf("Path() = %q", s.Path())
	}
	if s.Title() != "Minimal" {
		t.Errorf("Title() = %q, want Minimal", s.Title())
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}).Load("toastSileo", "toastsileo.props.json")
	if err == nil {
		t.Fatal("Load() should fail for a missing resource")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
	if loadErr.Path != "/toastsileo/toastsileo.props.json" {
		t.Errorf("LoadError.Path = %q", loadErr.Path)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound: %v", err)
	}
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"type": "object",`},
		{"bad keyword", `{"type": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"widget/widget.props.json": {Data: []byte(tt.data)}}
			_, err := NewLoader(fsys).Load("Widget", "widget.props.json")
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSchema_PropertyNamesAndDefaults(t *testing.T) {
	s, err := Parse("/minimal/minimal.props.json", []byte(minimalSchema))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	names := s.PropertyNames()
	if len(names) != 2 || names[0] != "count" || names[1] != "label" {
		t.Errorf("PropertyNames() = %v, want [count label]", names)
	}

	defaults := s.Defaults()
	if defaults["label"] != "hello" {
		t.Errorf("Defaults()[label] = %v, want hello", defaults["label"])
	}
	if _, ok := defaults["count"]; ok {
		t.Error("Defaults() should not contain count")
	}
}

func TestSchema_Validate(t *testing.T) {
	s, err := Parse("/minimal/minimal.props.json", []byte(minimalSchema))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := s.Validate([]byte(`{"label": "x", "count": 3}`)); err != nil {
		t.Errorf("Validate() valid doc error = %v", err)
	}
	if err := s.Validate([]byte(`{"count": -1}`)); err == nil {
		t.Error("Validate() should reject count < 0")
	}
	if err := s.Validate([]byte(`{`)); err == nil {
		t.Error("Validate() should reject malformed JSON")
	}
}

func TestSchema_MarshalJSON(t *testing.T) {
	s, err := Parse("/minimal/minimal.props.json", []byte(minimalSchema))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if _, err := Parse(s.Path(), data); err != nil {
		t.Errorf("marshaled schema does not parse: %v", err)
	}
}

func TestLoader_BundledToastSileo(t *testing.T) {
	s, err := NewLoader(resources.FS()).Load("toastSileo", "toastsileo.props.json")
	if err != nil {
		t.Fatalf("Load() bundled schema error = %v", err)
	}

	want := []string{"description", "duration", "position", "theme", "title", "trigger", "type"}
	got := s.PropertyNames()
	if len(got) != len(want) {
		t.Fatalf("PropertyNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PropertyNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	defaults := s.Defaults()
	if defaults["position"] != "bottom-right" {
		t.Errorf("default position = %v, want bottom-right", defaults["position"])
	}
	if defaults["duration"] != float64(4000) {
		t.Errorf("default duration = %v, want 4000", defaults["duration"])
	}

	if err := s.Validate([]byte(`{"type": "toast"}`)); err == nil {
		t.Error("Validate() should reject an unknown toast type")
	}
	if err := s.Validate([]byte(`{"type": "success", "duration": 1500, "theme": "dark"}`)); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
