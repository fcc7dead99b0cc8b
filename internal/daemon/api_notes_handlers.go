package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"quirknotes/internal/types"
)

const maxNoteBodyBytes = 1 << 20

type notesResponse struct {
	Response []*types.Note `json:"response"`
}

type createNoteResponse struct {
	Response   string `json:"response"`
	InsertedID string `json:"insertedId"`
}

type messageResponse struct {
	Response string `json:"response"`
}

func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.Notes.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notesResponse{Response: notes})
}

func (a *API) CreateNote(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeNoteFields(w, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	note, err := a.Notes.Create(r.Context(), fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createNoteResponse{
		Response:   "Note added successfully.",
		InsertedID: note.ID,
	})
}

func (a *API) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	fields, err := decodeNoteFields(w, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if _, err := a.Notes.Update(r.Context(), id, fields); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Response: fmt.Sprintf("Note %s updated.", id)})
}

func (a *API) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := a.Notes.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Response: fmt.Sprintf("Note %s deleted.", id)})
}

func (a *API) DeleteAllNotes(w http.ResponseWriter, r *http.Request) {
	count, err := a.Notes.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Response: fmt.Sprintf("%d notes deleted.", count)})
}

func decodeNoteFields(w http.ResponseWriter, r *http.Request) (types.NoteFields, error) {
	var fields types.NoteFields
	r.Body = http.MaxBytesReader(w, r.Body, maxNoteBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.NoteFields{}, tooLargeError(fmt.Sprintf("note body exceeds %d bytes", tooLarge.Limit), err)
		}
		return types.NoteFields{}, invalidError("invalid json body", err)
	}
	return fields, nil
}

// pathID reads the {id} route variable. The router matches on the escaped
// path so ids containing "/" stay inside one segment.
func pathID(r *http.Request) string {
	raw := mux.Vars(r)["id"]
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}
