package app

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"quirknotes/internal/types"
)

type dialogMode int

const (
	dialogClosed dialogMode = iota
	dialogCreate
	dialogEdit
)

func (m dialogMode) String() string {
	switch m {
	case dialogCreate:
		return "create"
	case dialogEdit:
		return "edit"
	default:
		return "closed"
	}
}

// NotesState owns the notes collection and the dialog target. A nil
// collection means the notes were never loaded.
type NotesState struct {
	notes    []*types.Note
	loading  bool
	dialog   dialogMode
	target   *types.Note
	selected int
	filter   string
	visible  []int
	epoch    int
}

func NewNotesState() *NotesState {
	return &NotesState{loading: true}
}

func (s *NotesState) Loaded() bool {
	return s.notes != nil
}

func (s *NotesState) Loading() bool {
	return s.loading
}

func (s *NotesState) Len() int {
	return len(s.notes)
}

func (s *NotesState) Notes() []*types.Note {
	return types.CloneNotes(s.notes)
}

func (s *NotesState) BeginLoad() {
	s.loading = true
}

func (s *NotesState) ApplyLoaded(notes []*types.Note) {
	s.loading = false
	s.notes = types.CloneNotes(notes)
	if s.notes == nil {
		s.notes = []*types.Note{}
	}
	s.refresh()
}

// LoadFailed ends the loading phase and leaves the collection untouched, so a
// failed first load stays unset.
func (s *NotesState) LoadFailed() {
	s.loading = false
}

// RemoveOptimistic drops the note with id and reports where it was.
func (s *NotesState) RemoveOptimistic(id string) (int, *types.Note, bool) {
	index := s.indexOf(id)
	if index < 0 {
		return -1, nil, false
	}
	removed := s.notes[index]
	s.notes = append(s.notes[:index:index], s.notes[index+1:]...)
	s.refresh()
	return index, removed, true
}

// Epoch counts ClearAll calls. A removal taken in an older epoch was
// superseded by a delete-all and must not be restored.
func (s *NotesState) Epoch() int {
	return s.epoch
}

// Restore reinserts a note removed by RemoveOptimistic during epoch. The
// index is clamped to the current length; a note whose id is already present
// is ignored.
func (s *NotesState) Restore(epoch, index int, note *types.Note) bool {
	if note == nil || s.notes == nil || epoch != s.epoch || s.indexOf(note.ID) >= 0 {
		return false
	}
	index = clamp(index, 0, len(s.notes))
	next := make([]*types.Note, 0, len(s.notes)+1)
	next = append(next, s.notes[:index]...)
	next = append(next, types.CloneNote(note))
	next = append(next, s.notes[index:]...)
	s.notes = next
	s.refresh()
	return true
}

func (s *NotesState) ClearAll() {
	s.epoch++
	s.notes = []*types.Note{}
	s.refresh()
}

func (s *NotesState) ApplyCreated(note *types.Note) {
	if note == nil {
		return
	}
	if s.notes == nil {
		s.notes = []*types.Note{}
	}
	s.notes = append(s.notes, types.CloneNote(note))
	s.refresh()
}

// ApplyPatched replaces title and content of the note with id in place.
func (s *NotesState) ApplyPatched(id string, fields types.NoteFields) bool {
	index := s.indexOf(id)
	if index < 0 {
		return false
	}
	updated := types.CloneNote(s.notes[index])
	updated.Title = fields.Title
	updated.Content = fields.Content
	s.notes[index] = updated
	s.refresh()
	return true
}

func (s *NotesState) DialogMode() dialogMode {
	return s.dialog
}

func (s *NotesState) DialogOpen() bool {
	return s.dialog != dialogClosed
}

func (s *NotesState) DialogTarget() *types.Note {
	return types.CloneNote(s.target)
}

func (s *NotesState) OpenCreate() bool {
	if s.DialogOpen() {
		return false
	}
	s.dialog = dialogCreate
	s.target = nil
	return true
}

func (s *NotesState) OpenEdit(note *types.Note) bool {
	if s.DialogOpen() || note == nil {
		return false
	}
	s.dialog = dialogEdit
	s.target = types.CloneNote(note)
	return true
}

func (s *NotesState) CloseDialog() {
	s.dialog = dialogClosed
	s.target = nil
}

func (s *NotesState) Filter() string {
	return s.filter
}

func (s *NotesState) SetFilter(query string) {
	s.filter = strings.TrimSpace(query)
	s.selected = 0
	s.refresh()
}

// Visible returns the notes that pass the filter, in collection order.
func (s *NotesState) Visible() []*types.Note {
	out := make([]*types.Note, 0, len(s.visible))
	for _, index := range s.visible {
		out = append(out, s.notes[index])
	}
	return out
}

func (s *NotesState) SelectedIndex() int {
	return s.selected
}

func (s *NotesState) Selected() *types.Note {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return nil
	}
	return s.notes[s.visible[s.selected]]
}

func (s *NotesState) MoveSelection(delta int) {
	if len(s.visible) == 0 {
		s.selected = 0
		return
	}
	s.selected = clamp(s.selected+delta, 0, len(s.visible)-1)
}

func (s *NotesState) indexOf(id string) int {
	for i, note := range s.notes {
		if note != nil && note.ID == id {
			return i
		}
	}
	return -1
}

func (s *NotesState) refresh() {
	s.visible = filterNoteIndices(s.filter, s.notes)
	if len(s.visible) == 0 {
		s.selected = 0
		return
	}
	s.selected = clamp(s.selected, 0, len(s.visible)-1)
}

type noteSearchSource []*types.Note

func (n noteSearchSource) String(i int) string {
	return n[i].Title + " " + n[i].Content
}

func (n noteSearchSource) Len() int {
	return len(n)
}

func filterNoteIndices(query string, notes []*types.Note) []int {
	if query == "" {
		out := make([]int, len(notes))
		for i := range notes {
			out[i] = i
		}
		return out
	}
	matches := fuzzy.FindFrom(query, noteSearchSource(notes))
	out := make([]int, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Index)
	}
	sort.Ints(out)
	return out
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
