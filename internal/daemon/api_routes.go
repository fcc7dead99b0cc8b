package daemon

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) RegisterRoutes(r *mux.Router) {
	r.Methods(http.MethodGet).Path("/health").HandlerFunc(a.Health)
	r.Methods(http.MethodGet).Path("/getAllNotes").HandlerFunc(a.ListNotes)
	r.Methods(http.MethodPost).Path("/postNote").HandlerFunc(a.CreateNote)
	r.Methods(http.MethodPatch).Path("/patchNote/{id}").HandlerFunc(a.UpdateNote)
	r.Methods(http.MethodDelete).Path("/deleteNote/{id}").HandlerFunc(a.DeleteNote)
	r.Methods(http.MethodDelete).Path("/deleteAllNotes").HandlerFunc(a.DeleteAllNotes)

	// Router middleware only wraps matched routes, so the fallbacks carry
	// their own request logging.
	logged := LoggingMiddleware(a.logger())
	r.NotFoundHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeServiceError(w, notFoundError("route not found", nil))
	}))
	r.MethodNotAllowedHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}))
}
