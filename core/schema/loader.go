package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	// ErrNotFound is wrapped by LoadError when the resource is missing.
	ErrNotFound = errors.New("schema resource not found")

	// ErrInvalid is wrapped by LoadError when the resource does not parse
	// or compile.
	ErrInvalid = errors.New("schema resource invalid")
)

// resourceBase prefixes bundle paths to form the compiler resource URL.
const resourceBase = "bundle://radcomponents"

// LoadError reports a schema that could not be loaded from the bundle.
type LoadError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load schema %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// ResourcePath returns the bundle path of a component resource.
func ResourcePath(metaName, resourceFile string) string {
	return "/" + strings.ToLower(metaName) + "/" + resourceFile
}

// Loader reads schemas from a resource bundle.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over the given bundle.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads and compiles the schema for metaName stored in resourceFile.
func (l *Loader) Load(metaName, resourceFile string) (*Schema, error) {
	path := ResourcePath(metaName, resourceFile)

	raw, err := fs.ReadFile(l.fsys, strings.TrimPrefix(path, "/"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrNotFound}
		}
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}

	return Parse(path, raw)
}

// Parse compiles raw as the schema found at path.
func Parse(path string, raw []byte) (*Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}

	url := resourceBase + path
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalid, err)}
	}

	return &Schema{
		path:     path,
		raw:      bytes.Clone(raw),
		compiled: compiled,
	}, nil
}
