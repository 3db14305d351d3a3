package credential

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traductor/internal/domain"
)

func TestSetGetRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	store := NewFileStore(path, "")

	require.NoError(t, store.Set("sk-test-123"))
	key, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)

	// A second store over the same path sees the persisted key.
	again := NewFileStore(path, "")
	key, err = again.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)
}

func TestSetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	store := NewFileStore(path, "")
	require.NoError(t, store.Set("old"))
	require.NoError(t, store.Set("new"))
	key, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "new", key)
}

func TestGetMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.toml"), "")
	_, err := store.Get()
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("TRADUCTOR_TEST_KEY", "sk-from-env")
	store := NewFileStore(filepath.Join(t.TempDir(), "credentials.toml"), "TRADUCTOR_TEST_KEY")
	key, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", key)
}

func TestFilePrecedesEnv(t *testing.T) {
	t.Setenv("TRADUCTOR_TEST_KEY", "sk-from-env")
	path := filepath.Join(t.TempDir(), "credentials.toml")
	store := NewFileStore(path, "TRADUCTOR_TEST_KEY")
	require.NoError(t, store.Set("sk-from-file"))
	key, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", key)
}
