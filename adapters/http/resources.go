package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ResourcePrefix is the URL prefix under which alias's resources are served.
func ResourcePrefix(alias string) string {
	return "/res/" + alias
}

// MountResources serves fsys under /res/<alias>/.
func MountResources(r chi.Router, alias string, fsys fs.FS) {
	prefix := ResourcePrefix(alias)
	files := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	r.Handle(prefix+"/*", files)
}
