package app

import (
	"context"

	"quirknotes/internal/types"
)

// NotesAPI is the backend surface the UI needs. *client.Client satisfies it.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	CreateNote(ctx context.Context, fields types.NoteFields) (*types.Note, error)
	UpdateNote(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
	DeleteAllNotes(ctx context.Context) error
}
