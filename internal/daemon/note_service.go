package daemon

import (
	"context"
	"errors"
	"strings"

	"quirknotes/internal/logging"
	"quirknotes/internal/store"
	"quirknotes/internal/types"
)

type NoteService struct {
	notes  store.NoteStore
	logger logging.Logger
}

func NewNoteService(notes store.NoteStore, logger logging.Logger) *NoteService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoteService{notes: notes, logger: logger}
}

func (s *NoteService) List(ctx context.Context) ([]*types.Note, error) {
	if s == nil || s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, fields types.NoteFields) (*types.Note, error) {
	if s == nil || s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	fields = fields.Normalized()
	if fields.Title == "" {
		return nil, invalidError("title is required", nil)
	}
	note, err := s.notes.Create(ctx, fields)
	if err != nil {
		return nil, s.storeError("create", err)
	}
	s.logger.Info("note_created", logging.F("id", note.ID))
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, id string, fields types.NoteFields) (*types.Note, error) {
	if s == nil || s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("note id is required", nil)
	}
	fields = fields.Normalized()
	if fields.Title == "" {
		return nil, invalidError("title is required", nil)
	}
	note, err := s.notes.Update(ctx, id, fields)
	if err != nil {
		return nil, s.storeError("update", err)
	}
	s.logger.Info("note_updated", logging.F("id", id))
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if s == nil || s.notes == nil {
		return unavailableError("note store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return invalidError("note id is required", nil)
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return s.storeError("delete", err)
	}
	s.logger.Info("note_deleted", logging.F("id", id))
	return nil
}

func (s *NoteService) DeleteAll(ctx context.Context) (int, error) {
	if s == nil || s.notes == nil {
		return 0, unavailableError("note store not available", nil)
	}
	count, err := s.notes.DeleteAll(ctx)
	if err != nil {
		return 0, s.storeError("delete all", err)
	}
	s.logger.Info("notes_cleared", logging.F("count", count))
	return count, nil
}

func (s *NoteService) storeError(op string, err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return notFoundError("note not found", err)
	}
	s.logger.Error("note_store_failed", logging.F("op", op), logging.Err(err))
	return unavailableError(err.Error(), err)
}
