package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileCredentialStore keeps the bearer token in a file readable only by the
// current user.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore returns a store backed by path. The parent
// directory is created on the first Save.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

// Load implements [CredentialStore].
func (s *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoCredentials
	}
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredentials
	}
	return token, nil
}

// Save implements [CredentialStore]. The token is written to a temporary
// file and renamed into place.
func (s *FileCredentialStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("create credentials file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod credentials file: %w", err)
	}
	if _, err = tmp.WriteString(token); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close credentials file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

// Clear implements [CredentialStore].
func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
