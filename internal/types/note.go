package types

import (
	"strings"
	"time"
)

// Note is the record exchanged with the notes backend. The id keeps the
// backend's `_id` wire name.
type Note struct {
	ID        string    `json:"_id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

// NoteFields is the mutable part of a note, sent on create and update.
type NoteFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (f NoteFields) Normalized() NoteFields {
	return NoteFields{
		Title:   strings.TrimSpace(f.Title),
		Content: strings.TrimRight(f.Content, " \t\n"),
	}
}

func (n *Note) Fields() NoteFields {
	if n == nil {
		return NoteFields{}
	}
	return NoteFields{Title: n.Title, Content: n.Content}
}

func CloneNote(note *Note) *Note {
	if note == nil {
		return nil
	}
	copy := *note
	return &copy
}

func CloneNotes(notes []*Note) []*Note {
	if notes == nil {
		return nil
	}
	out := make([]*Note, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		out = append(out, CloneNote(note))
	}
	return out
}
