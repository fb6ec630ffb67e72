// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStorage persists the auth token across process restarts.
//
// Implementations must treat "no token" as a normal state: Load returns an
// empty string, not an error, when nothing has been saved yet.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Remove() error
}

// # File-Backed Storage

// FileTokenStorage keeps the token in a single file, by convention named
// "token" under the user config directory.
type FileTokenStorage struct {
	path string
}

// NewFileTokenStorage creates storage rooted at path.
func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

// Load reads the persisted token. A missing file means no token.
func (s *FileTokenStorage) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

// Save writes the token, creating parent directories as needed. The file is
// readable only by the owner.
func (s *FileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	return nil
}

// Remove deletes the token file. Removing an absent token is not an error.
func (s *FileTokenStorage) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}

	return nil
}

// # In-Memory Storage

// MemoryTokenStorage holds the token in memory only. Used in tests and for
// one-shot invocations that should not leave credentials on disk.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStorage creates empty in-memory storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStorage) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
