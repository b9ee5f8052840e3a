package http

import (
	"encoding/json"
	"net/http"

	"github.com/fakester/radcomponents/adapters/metrics"
	"github.com/fakester/radcomponents/domain/license"
	"github.com/fakester/radcomponents/ports"
	"github.com/go-chi/chi/v5"
)

// LicenseStatePath is the module status route.
const LicenseStatePath = "/module/licenseState"

// LicenseStateHandler serves the current license state as JSON. A nil
// source serves the default state.
//
//	@Summary		Module license state
//	@Description	Returns the module license state as seen by the gateway
//	@Tags			Module
//	@Produce		json
//	@Success		200	{object}	license.State	"License state"
//	@Router			/module/licenseState [get]
func LicenseStateHandler(src ports.LicenseSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := license.Default()
		if src != nil {
			state = src.LicenseState()
		}

		body, err := json.Marshal(state)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// MountStatusRoutes installs the module status endpoint on r.
func MountStatusRoutes(r chi.Router, src ports.LicenseSource) {
	r.Get(LicenseStatePath, LicenseStateHandler(src))
}

// StatusRoutes returns a route mounter for the gateway hook. Requests are
// counted when m is not nil.
func StatusRoutes(src ports.LicenseSource, m *metrics.Collector) func(r chi.Router) {
	return func(r chi.Router) {
		h := LicenseStateHandler(src)
		if m == nil {
			r.Get(LicenseStatePath, h)
			return
		}
		r.Get(LicenseStatePath, func(w http.ResponseWriter, req *http.Request) {
			m.LicenseStateRequests.Inc()
			h(w, req)
		})
	}
}
