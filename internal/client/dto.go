package client

import "quirknotes/internal/types"

type NotesResponse struct {
	Response []*types.Note `json:"response"`
}

type CreateNoteResponse struct {
	Response   string `json:"response"`
	InsertedID string `json:"insertedId"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}
