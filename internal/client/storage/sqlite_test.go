package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMem(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_SetAndGet(t *testing.T) {
	s := openMem(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "accessToken", []byte("tok")))

	v, err := s.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), v)
}

func TestSQLite_GetMissing_ReturnsNilNil(t *testing.T) {
	s := openMem(t)

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_SetOverwrites(t *testing.T) {
	s := openMem(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLite_SetManyListDeleteClear(t *testing.T) {
	s := openMem(t)
	ctx := context.Background()

	require.NoError(t, s.SetMany(ctx, map[string][]byte{
		"accessToken": []byte("t"),
		"userProfile": []byte(`{"id":"1"}`),
		"token":       []byte("legacy"),
	}))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.Delete(ctx, "accessToken", "token", "never-existed"))
	all, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"userProfile": []byte(`{"id":"1"}`)}, all)

	require.NoError(t, s.Delete(ctx))
	require.NoError(t, s.Clear(ctx))
	all, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLite_OpenFileCreatesDirAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "accessToken", []byte("persisted")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), v)
}

func TestSQLite_OpenEmptyDSN(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	require.Error(t, err)
}

func TestSQLite_SetMany_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO session_slots").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewSQLiteStore(db)
	err = s.SetMany(context.Background(), map[string][]byte{"accessToken": []byte("t")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set slot[accessToken]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_GetWrapsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM session_slots").
		WithArgs("k").
		WillReturnError(errors.New("boom"))

	_, err = NewSQLiteStore(db).Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get slot[k]")
	require.NoError(t, mock.ExpectationsWereMet())
}
