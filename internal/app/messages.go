package app

import "quirknotes/internal/types"

type notesLoadedMsg struct {
	notes []*types.Note
	err   error
}

// seq identifies the dialog submit that issued the request.
type noteCreatedMsg struct {
	seq  int
	note *types.Note
	err  error
}

type noteUpdatedMsg struct {
	seq    int
	id     string
	fields types.NoteFields
	err    error
}

// noteDeletedMsg carries the removed note and its old index so a failed
// delete can put it back.
type noteDeletedMsg struct {
	note  *types.Note
	index int
	epoch int
	err   error
}

type notesClearedMsg struct {
	err error
}

type clipboardResultMsg struct {
	method clipboardMethod
	err    error
}
