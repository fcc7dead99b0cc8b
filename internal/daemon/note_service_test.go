package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirknotes/internal/store"
	"quirknotes/internal/types"
)

type failingNoteStore struct {
	store.NoteStore
	err error
}

func (s failingNoteStore) List(context.Context) ([]*types.Note, error) {
	return nil, s.err
}

func TestNoteServiceMapsStoreErrors(t *testing.T) {
	svc := NewNoteService(failingNoteStore{err: errors.New("disk gone")}, nil)

	_, err := svc.List(context.Background())
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ServiceErrorUnavailable, svcErr.Kind)
	assert.Equal(t, "disk gone", svcErr.Message)
}

func TestNoteServiceValidation(t *testing.T) {
	svc := NewNoteService(newTestRepository(t, store.RepositoryBackendFile).Notes(), nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, " ", types.NoteFields{Title: "x"})
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ServiceErrorInvalid, svcErr.Kind)

	err = svc.Delete(ctx, "missing")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ServiceErrorNotFound, svcErr.Kind)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)

	var nilSvc *NoteService
	_, err = nilSvc.List(ctx)
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, ServiceErrorUnavailable, svcErr.Kind)
}
