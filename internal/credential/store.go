package credential

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"traductor/internal/domain"
)

// FileStore persists the provider API key in a TOML file under the user's
// config directory, so it survives restarts. The translator and embedder
// share one key.
type FileStore struct {
	path string
	env  string
}

type credentialsFile struct {
	APIKey string `toml:"api_key"`
}

// NewFileStore creates a store backed by the given path. envFallback names
// an environment variable consulted when the file has no key.
func NewFileStore(path, envFallback string) *FileStore {
	return &FileStore{path: path, env: envFallback}
}

// DefaultPath returns ~/.config/traductor/credentials.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "traductor", "credentials.toml"), nil
}

// Get returns the stored API key, falling back to the environment. A missing
// key is ErrCredentialMissing so callers can fail fast before any network
// call.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var f credentialsFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return "", err
		}
		if f.APIKey != "" {
			return f.APIKey, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if s.env != "" {
		if key := os.Getenv(s.env); key != "" {
			return key, nil
		}
	}
	return "", domain.ErrCredentialMissing
}

// Set writes the API key to the credentials file, creating directories as
// needed. The file is user-readable only.
func (s *FileStore) Set(key string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(credentialsFile{APIKey: key})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
