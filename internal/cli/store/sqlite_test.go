package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	return s, path
}

func TestSetGetDelete(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	token := gofakeit.UUID()
	require.NoError(t, s.Set(ctx, "token", token))
	require.NoError(t, s.Set(ctx, "token", token+"-2"))

	got, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, token+"-2", got)

	require.NoError(t, s.Delete(ctx, "token", "missing"))
	_, err = s.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValuesSurviveReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	email := gofakeit.Email()

	require.NoError(t, s.Set(ctx, "email", email))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "email")
	require.NoError(t, err)
	assert.Equal(t, email, got)
}
