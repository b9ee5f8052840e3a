// Package resources holds the files bundled with the module: component
// schemas under /<metaName lowercased>/ and the browser assets served from
// the mounted folder.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed toastsileo mounted
var bundle embed.FS

// FS returns the whole resource bundle.
func FS() fs.FS {
	return bundle
}

// Mounted returns the mounted folder, the root of /res/<alias>/.
func Mounted() fs.FS {
	sub, err := fs.Sub(bundle, "mounted")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
