package handler

import "net/http"

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HandleVersion reports the running service version for deployment checks.
func HandleVersion(service, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{
			Service: service,
			Version: version,
		})
	}
}
