package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens an in-memory store with the schema initialized.
func setupTestStore(t *testing.T) *Manager {
	t.Helper()

	m, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestGet_Missing(t *testing.T) {
	m := setupTestStore(t)

	_, err := m.Get("playlist")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetAndGet(t *testing.T) {
	m := setupTestStore(t)

	require.NoError(t, m.Set("playlist", `[{"title":"A"}]`))

	got, err := m.Get("playlist")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"A"}]`, got)
}

func TestSet_Overwrites(t *testing.T) {
	m := setupTestStore(t)

	require.NoError(t, m.Set("k", "one"))
	require.NoError(t, m.Set("k", "two"))

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "two", got)
}

func TestRemove(t *testing.T) {
	m := setupTestStore(t)
	require.NoError(t, m.Set("k", "v"))

	require.NoError(t, m.Remove("k"))
	require.NoError(t, m.Remove("never-set"))

	_, err := m.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatedAt(t *testing.T) {
	m := setupTestStore(t)

	_, err := m.UpdatedAt("k")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set("k", "v"))
	ts, err := m.UpdatedAt("k")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

func TestProbe_LeavesNoKey(t *testing.T) {
	m := setupTestStore(t)

	require.NoError(t, m.Probe())

	_, err := m.Get(probeKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, Available(m))
}

func TestOpen_FileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "genwaves.db")

	m, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, m.Set("playlist", "[]"))
	require.NoError(t, m.Close())

	m, err = Open(path)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.Get("playlist")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available(nil))

	ok := NewMock()
	assert.True(t, Available(ok))
	_, found := ok.Value(probeKey)
	assert.False(t, found)

	broken := NewMock()
	broken.SetSetError(errors.New("quota exceeded"))
	assert.False(t, Available(broken))
}
