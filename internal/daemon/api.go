package daemon

import (
	"net/http"

	"github.com/gorilla/mux"

	"quirknotes/internal/logging"
)

type API struct {
	Version string
	Notes   *NoteService
	Logger  logging.Logger
}

// Handler builds the routed handler with request logging applied.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(LoggingMiddleware(a.logger()))
	a.RegisterRoutes(r)
	return r
}

func (a *API) logger() logging.Logger {
	if a == nil || a.Logger == nil {
		return logging.Nop()
	}
	return a.Logger
}
