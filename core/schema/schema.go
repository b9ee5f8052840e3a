package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled props schema. It is read-only once loaded.
type Schema struct {
	path     string
	raw      []byte
	compiled *jsonschema.Schema
}

// Path returns the bundle path the schema was loaded from.
func (s *Schema) Path() string {
	return s.path
}

// Raw returns a copy of the schema document.
func (s *Schema) Raw() []byte {
	return bytes.Clone(s.raw)
}

// Title returns the schema title, if any.
func (s *Schema) Title() string {
	return s.compiled.Title
}

// PropertyNames returns the top-level property names, sorted.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.compiled.Properties))
	for name := range s.compiled.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the top-level property defaults declared by the schema.
func (s *Schema) Defaults() map[string]any {
	var doc struct {
		Properties map[string]struct {
			Default json.RawMessage `json:"default"`
		} `json:"properties"`
	}
	result := make(map[string]any)
	if err := json.Unmarshal(s.raw, &doc); err != nil {
		return result
	}

	for name, prop := range doc.Properties {
		if len(prop.Default) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(prop.Default, &v); err == nil {
			result[name] = v
		}
	}
	return result
}

// Validate checks a props document against the schema.
func (s *Schema) Validate(doc []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse props: %w", err)
	}
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("validate props against %s: %w", s.path, err)
	}
	return nil
}

// MarshalJSON returns the schema document.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, s.raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
