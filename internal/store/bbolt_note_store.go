package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"quirknotes/internal/types"
)

var (
	bucketNotes = []byte("notes")
	bucketMeta  = []byte("meta")
	keyVersion  = []byte("schema_version")
	keySeeded   = []byte("seeded_from_file")
)

var errNotesBucketMissing = errors.New("notes bucket missing")

type bboltRepository struct {
	db    *bolt.DB
	notes *bboltNoteStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{db: db, notes: &bboltNoteStore{db: db}}, nil
}

func (r *bboltRepository) Notes() NoteStore {
	return r.notes
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketNotes); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if meta.Get(keyVersion) == nil {
			return meta.Put(keyVersion, []byte{byte(noteSchemaVersion)})
		}
		return nil
	})
}

type bboltNoteStore struct {
	db *bolt.DB
}

func (s *bboltNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	out := make([]*types.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var note types.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			out = append(out, &note)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortNotes(out)
	return out, nil
}

func (s *bboltNoteStore) Create(ctx context.Context, fields types.NoteFields) (*types.Note, error) {
	note := newNote(fields)
	if err := s.put(note); err != nil {
		return nil, err
	}
	return types.CloneNote(note), nil
}

func (s *bboltNoteStore) Update(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error) {
	var updated *types.Note
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errNotesBucketMissing
		}
		raw := b.Get([]byte(id))
		if raw == nil {
			return ErrNoteNotFound
		}
		var existing types.Note
		if err := json.Unmarshal(raw, &existing); err != nil {
			return err
		}
		updated = applyNoteFields(&existing, fields)
		next, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), next)
	})
	if err != nil {
		return nil, err
	}
	return types.CloneNote(updated), nil
}

func (s *bboltNoteStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errNotesBucketMissing
		}
		key := []byte(id)
		if b.Get(key) == nil {
			return ErrNoteNotFound
		}
		return b.Delete(key)
	})
}

func (s *bboltNoteStore) DeleteAll(ctx context.Context) (int, error) {
	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errNotesBucketMissing
		}
		if err := b.ForEach(func(k, v []byte) error {
			count++
			return nil
		}); err != nil {
			return err
		}
		if err := tx.DeleteBucket(bucketNotes); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketNotes)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// seeded reports whether the one-time import from the JSON file already ran.
func (s *bboltNoteStore) seeded() (bool, error) {
	var done bool
	err := s.db.View(func(tx *bolt.Tx) error {
		if meta := tx.Bucket(bucketMeta); meta != nil {
			done = meta.Get(keySeeded) != nil
		}
		return nil
	})
	return done, err
}

// importNotes stores notes unchanged and records the seeded marker in the
// same transaction.
func (s *bboltNoteStore) importNotes(notes []*types.Note) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errNotesBucketMissing
		}
		for _, note := range notes {
			raw, err := json.Marshal(note)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(note.ID), raw); err != nil {
				return err
			}
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		return meta.Put(keySeeded, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

func (s *bboltNoteStore) put(note *types.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errNotesBucketMissing
		}
		return b.Put([]byte(note.ID), raw)
	})
}
