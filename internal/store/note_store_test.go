package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirknotes/internal/types"
)

type storeFactory func(t *testing.T) NoteStore

func noteStoreBackends() map[string]storeFactory {
	return map[string]storeFactory{
		RepositoryBackendFile: func(t *testing.T) NoteStore {
			return NewFileNoteStore(filepath.Join(t.TempDir(), "notes.json"))
		},
		RepositoryBackendBbolt: func(t *testing.T) NoteStore {
			repo, err := NewBboltRepository(filepath.Join(t.TempDir(), "notes.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = repo.Close() })
			return repo.Notes()
		},
	}
}

func TestNoteStoreListEmpty(t *testing.T) {
	for name, factory := range noteStoreBackends() {
		t.Run(name, func(t *testing.T) {
			notes, err := factory(t).List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, notes)
		})
	}
}

func TestNoteStoreCRUD(t *testing.T) {
	for name, factory := range noteStoreBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)

			first, err := s.Create(ctx, types.NoteFields{Title: "  First ", Content: "one\n"})
			require.NoError(t, err)
			require.NotEmpty(t, first.ID)
			assert.Equal(t, "First", first.Title)
			assert.Equal(t, "one", first.Content)
			assert.False(t, first.CreatedAt.IsZero())

			second, err := s.Create(ctx, types.NoteFields{Title: "Second", Content: "two"})
			require.NoError(t, err)
			third, err := s.Create(ctx, types.NoteFields{Title: "Third", Content: "three"})
			require.NoError(t, err)

			notes, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, notes, 3)
			assert.Equal(t, []string{first.ID, second.ID, third.ID}, noteIDs(notes))

			time.Sleep(5 * time.Millisecond)
			updated, err := s.Update(ctx, second.ID, types.NoteFields{Title: "Second v2", Content: "two"})
			require.NoError(t, err)
			assert.Equal(t, "Second v2", updated.Title)
			assert.Equal(t, second.CreatedAt.UnixNano(), updated.CreatedAt.UnixNano())
			assert.True(t, updated.UpdatedAt.After(second.UpdatedAt))

			notes, err = s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{first.ID, second.ID, third.ID}, noteIDs(notes), "update keeps list position")

			got := findNote(t, s, second.ID)
			require.NotNil(t, got)
			assert.Equal(t, "Second v2", got.Title)

			require.NoError(t, s.Delete(ctx, first.ID))
			assert.Nil(t, findNote(t, s, first.ID))

			assert.ErrorIs(t, s.Delete(ctx, first.ID), ErrNoteNotFound)
			_, err = s.Update(ctx, first.ID, types.NoteFields{Title: "gone"})
			assert.ErrorIs(t, err, ErrNoteNotFound)

			count, err := s.DeleteAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			notes, err = s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, notes)

			_, err = s.Create(ctx, types.NoteFields{Title: "After clear"})
			require.NoError(t, err)
		})
	}
}

func TestNoteStoreReturnsClones(t *testing.T) {
	for name, factory := range noteStoreBackends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)
			created, err := s.Create(ctx, types.NoteFields{Title: "Keep"})
			require.NoError(t, err)

			created.Title = "mutated"
			got := findNote(t, s, created.ID)
			require.NotNil(t, got)
			assert.Equal(t, "Keep", got.Title)
		})
	}
}

func TestFileNoteStorePersistsVersionedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notes.json")
	s := NewFileNoteStore(path)
	_, err := s.Create(context.Background(), types.NoteFields{Title: "Persisted"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)
	assert.Contains(t, string(data), `"title": "Persisted"`)

	reopened := NewFileNoteStore(path)
	notes, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Persisted", notes[0].Title)
}

func TestOpenRepository(t *testing.T) {
	dir := t.TempDir()
	paths := RepositoryPaths{
		NotesPath: filepath.Join(dir, "notes.json"),
		DBPath:    filepath.Join(dir, "notes.db"),
	}

	fileRepo, err := OpenRepository(paths, "")
	require.NoError(t, err)
	assert.Equal(t, RepositoryBackendFile, fileRepo.Backend())

	boltRepo, err := OpenRepository(paths, "BBOLT")
	require.NoError(t, err)
	defer boltRepo.Close()
	assert.Equal(t, RepositoryBackendBbolt, boltRepo.Backend())

	_, err = OpenRepository(paths, "mongo")
	assert.Error(t, err)
	_, err = OpenRepository(RepositoryPaths{}, RepositoryBackendBbolt)
	assert.Error(t, err)
}

func TestSeedRepositoryFromFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := RepositoryPaths{
		NotesPath: filepath.Join(dir, "notes.json"),
		DBPath:    filepath.Join(dir, "notes.db"),
	}
	src := NewFileNoteStore(paths.NotesPath)
	a, err := src.Create(ctx, types.NoteFields{Title: "A", Content: "1"})
	require.NoError(t, err)
	b, err := src.Create(ctx, types.NoteFields{Title: "B", Content: "2"})
	require.NoError(t, err)

	repo, err := NewBboltRepository(paths.DBPath)
	require.NoError(t, err)
	defer repo.Close()

	seeded, err := SeedRepositoryFromFiles(ctx, repo, paths)
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)

	notes, err := repo.Notes().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, noteIDs(notes))

	seeded, err = SeedRepositoryFromFiles(ctx, repo, paths)
	require.NoError(t, err)
	assert.Zero(t, seeded, "non-empty target is left alone")
}

func TestSeedRepositoryFromFilesRunsOnce(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := RepositoryPaths{
		NotesPath: filepath.Join(dir, "notes.json"),
		DBPath:    filepath.Join(dir, "notes.db"),
	}
	_, err := NewFileNoteStore(paths.NotesPath).Create(ctx, types.NoteFields{Title: "Legacy"})
	require.NoError(t, err)

	repo, err := NewBboltRepository(paths.DBPath)
	require.NoError(t, err)
	seeded, err := SeedRepositoryFromFiles(ctx, repo, paths)
	require.NoError(t, err)
	require.Equal(t, 1, seeded)

	count, err := repo.Notes().DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NoError(t, repo.Close())

	reopened, err := NewBboltRepository(paths.DBPath)
	require.NoError(t, err)
	defer reopened.Close()
	seeded, err = SeedRepositoryFromFiles(ctx, reopened, paths)
	require.NoError(t, err)
	assert.Zero(t, seeded, "deleted notes stay deleted across restarts")

	notes, err := reopened.Notes().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestSeedMarksPopulatedStoreAsSeeded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := RepositoryPaths{
		NotesPath: filepath.Join(dir, "notes.json"),
		DBPath:    filepath.Join(dir, "notes.db"),
	}
	_, err := NewFileNoteStore(paths.NotesPath).Create(ctx, types.NoteFields{Title: "Legacy"})
	require.NoError(t, err)
	repo, err := NewBboltRepository(paths.DBPath)
	require.NoError(t, err)
	defer repo.Close()
	native, err := repo.Notes().Create(ctx, types.NoteFields{Title: "Native"})
	require.NoError(t, err)

	seeded, err := SeedRepositoryFromFiles(ctx, repo, paths)
	require.NoError(t, err)
	assert.Zero(t, seeded)
	require.NoError(t, repo.Notes().Delete(ctx, native.ID))

	seeded, err = SeedRepositoryFromFiles(ctx, repo, paths)
	require.NoError(t, err)
	assert.Zero(t, seeded, "an emptied store is not reseeded")
}

func TestFileNoteStoreTreatsBlankFileAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	notes, err := NewFileNoteStore(path).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = NewFileNoteStore(path).List(context.Background())
	assert.Error(t, err)
}

func findNote(t *testing.T, s NoteStore, id string) *types.Note {
	t.Helper()
	notes, err := s.List(context.Background())
	require.NoError(t, err)
	for _, note := range notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func noteIDs(notes []*types.Note) []string {
	out := make([]string, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.ID)
	}
	return out
}
