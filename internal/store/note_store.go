package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quirknotes/internal/types"
)

var ErrNoteNotFound = errors.New("note not found")

const noteSchemaVersion = 1

type NoteStore interface {
	List(ctx context.Context) ([]*types.Note, error)
	Create(ctx context.Context, fields types.NoteFields) (*types.Note, error)
	Update(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}

type FileNoteStore struct {
	path string
	mu   sync.Mutex
}

type noteFile struct {
	Version int           `json:"version"`
	Notes   []*types.Note `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path}
}

func (s *FileNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	out := types.CloneNotes(file.Notes)
	sortNotes(out)
	return out, nil
}

func (s *FileNoteStore) Create(ctx context.Context, fields types.NoteFields) (*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	note := newNote(fields)
	file.Notes = append(file.Notes, note)
	if err := s.save(file); err != nil {
		return nil, err
	}
	return types.CloneNote(note), nil
}

func (s *FileNoteStore) Update(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	for i, existing := range file.Notes {
		if existing.ID != id {
			continue
		}
		updated := applyNoteFields(existing, fields)
		file.Notes[i] = updated
		if err := s.save(file); err != nil {
			return nil, err
		}
		return types.CloneNote(updated), nil
	}
	return nil, ErrNoteNotFound
}

func (s *FileNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	filtered := file.Notes[:0]
	found := false
	for _, note := range file.Notes {
		if note.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, note)
	}
	if !found {
		return ErrNoteNotFound
	}
	file.Notes = filtered
	return s.save(file)
}

func (s *FileNoteStore) DeleteAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}
	count := len(file.Notes)
	file.Notes = []*types.Note{}
	if err := s.save(file); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *FileNoteStore) load() (*noteFile, error) {
	file := newNoteFile()
	found, err := readJSONFile(s.path, file)
	if err != nil {
		return nil, err
	}
	if !found {
		return newNoteFile(), nil
	}
	if file.Version == 0 {
		file.Version = noteSchemaVersion
	}
	if file.Notes == nil {
		file.Notes = []*types.Note{}
	}
	return file, nil
}

func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	return writeJSONFileAtomic(s.path, file)
}

func newNoteFile() *noteFile {
	return &noteFile{Version: noteSchemaVersion, Notes: []*types.Note{}}
}

func newNote(fields types.NoteFields) *types.Note {
	fields = fields.Normalized()
	now := time.Now().UTC()
	return &types.Note{
		ID:        newNoteID(),
		Title:     fields.Title,
		Content:   fields.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func applyNoteFields(existing *types.Note, fields types.NoteFields) *types.Note {
	fields = fields.Normalized()
	updated := types.CloneNote(existing)
	updated.Title = fields.Title
	updated.Content = fields.Content
	updated.UpdatedAt = time.Now().UTC()
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = updated.UpdatedAt
	}
	return updated
}

// sortNotes orders notes by creation, oldest first, so list order matches
// insertion order on every backend.
func sortNotes(notes []*types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return strings.Compare(notes[i].ID, notes[j].ID) < 0
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
}

func newNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
