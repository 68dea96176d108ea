package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"canopy.dev/canopyctl/internal/git"
)

// stateFileName is the well-known session file, kept under .git so it never
// dirties the working tree it describes.
const stateFileName = ".canopyctl_rebase"

// FileStore persists sessions as indented JSON under the repository's .git
// directory.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the repository rooted at repoRoot
func NewFileStore(repoRoot string) *FileStore {
	return &FileStore{path: filepath.Join(repoRoot, ".git", stateFileName)}
}

// Load reads the persisted session from disk
func (fs *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no rebase session found: %w", err)
		}
		return nil, fmt.Errorf("failed to read rebase session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse rebase session: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt rebase session: %w", err)
	}
	return &s, nil
}

// Save writes the session to disk
func (fs *FileStore) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rebase session: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write rebase session: %w", err)
	}
	return nil
}

// Clear removes the session file
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear rebase session: %w", err)
	}
	return nil
}

// Exists reports whether a session file is present
func (fs *FileStore) Exists() bool {
	_, err := os.Stat(fs.path)
	return err == nil
}

// MemoryStore is an in-memory Store for tests
type MemoryStore struct {
	session *Session
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored session
func (ms *MemoryStore) Load() (*Session, error) {
	if ms.session == nil {
		return nil, fmt.Errorf("no rebase session found: %w", os.ErrNotExist)
	}
	copied := *ms.session
	copied.Patches = append([]git.Commit(nil), ms.session.Patches...)
	return &copied, nil
}

// Save stores a copy of the session
func (ms *MemoryStore) Save(s *Session) error {
	copied := *s
	copied.Patches = append([]git.Commit(nil), s.Patches...)
	ms.session = &copied
	return nil
}

// Clear drops the stored session
func (ms *MemoryStore) Clear() error {
	ms.session = nil
	return nil
}

// Exists reports whether a session is stored
func (ms *MemoryStore) Exists() bool {
	return ms.session != nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
