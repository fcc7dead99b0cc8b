package store

import (
	"context"
	"errors"
	"strings"
)

const (
	RepositoryBackendFile  = "file"
	RepositoryBackendBbolt = "bbolt"
)

type Repository interface {
	Notes() NoteStore
	Backend() string
	Close() error
}

type RepositoryPaths struct {
	NotesPath string
	DBPath    string
}

type fileRepository struct {
	notes NoteStore
}

func NewFileRepository(paths RepositoryPaths) Repository {
	return &fileRepository{notes: NewFileNoteStore(paths.NotesPath)}
}

func (r *fileRepository) Notes() NoteStore {
	return r.notes
}

func (r *fileRepository) Backend() string {
	return RepositoryBackendFile
}

func (r *fileRepository) Close() error {
	return nil
}

func OpenRepository(paths RepositoryPaths, backend string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case RepositoryBackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt repository")
		}
		return NewBboltRepository(paths.DBPath)
	case "", RepositoryBackendFile:
		if strings.TrimSpace(paths.NotesPath) == "" {
			return nil, errors.New("notes path is required for file repository")
		}
		return NewFileRepository(paths), nil
	default:
		return nil, errors.New("unsupported repository backend: " + backend)
	}
}

// SeedRepositoryFromFiles copies notes from the JSON file into a bbolt dst
// once, so switching the server from file to bbolt storage keeps existing
// notes. The import is recorded in the store; later calls are no-ops even
// when every note has since been deleted.
func SeedRepositoryFromFiles(ctx context.Context, dst Repository, paths RepositoryPaths) (int, error) {
	if dst == nil || dst.Backend() == RepositoryBackendFile || strings.TrimSpace(paths.NotesPath) == "" {
		return 0, nil
	}
	target, ok := dst.Notes().(*bboltNoteStore)
	if !ok {
		return 0, errors.New("seed target does not support imports")
	}
	done, err := target.seeded()
	if err != nil || done {
		return 0, err
	}
	existing, err := target.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, target.importNotes(nil)
	}
	src := NewFileRepository(paths)
	defer src.Close()

	notes, err := src.Notes().List(ctx)
	if err != nil {
		return 0, err
	}
	if err := target.importNotes(notes); err != nil {
		return 0, err
	}
	return len(notes), nil
}
