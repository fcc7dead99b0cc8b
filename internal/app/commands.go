package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quirknotes/internal/types"
)

func fetchNotesCmd(api NotesAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func createNoteCmd(api NotesAPI, timeout time.Duration, seq int, fields types.NoteFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		note, err := api.CreateNote(ctx, fields)
		return noteCreatedMsg{seq: seq, note: note, err: err}
	}
}

func updateNoteCmd(api NotesAPI, timeout time.Duration, seq int, id string, fields types.NoteFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := api.UpdateNote(ctx, id, fields)
		return noteUpdatedMsg{seq: seq, id: id, fields: fields, err: err}
	}
}

func deleteNoteCmd(api NotesAPI, timeout time.Duration, note *types.Note, index, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.DeleteNote(ctx, note.ID)
		return noteDeletedMsg{note: note, index: index, epoch: epoch, err: err}
	}
}

func deleteAllNotesCmd(api NotesAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := api.DeleteAllNotes(ctx)
		return notesClearedMsg{err: err}
	}
}

func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		method, err := copyTextToClipboard(text)
		return clipboardResultMsg{method: method, err: err}
	}
}
