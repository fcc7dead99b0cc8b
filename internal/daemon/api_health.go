package daemon

import "net/http"

type healthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Version: a.Version})
}
