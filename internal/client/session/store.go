// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

/*
Package session holds the client's authentication session: who is signed in,
with which token, and whether the initial re-validation pass is still
running.

Architecture:

  - TokenStorage: durable token persistence (file-backed or in-memory).
  - Store: the mutable session state, guarded by a mutex and read through
    immutable snapshots.
  - Manager: the lifecycle state machine driving login, registration,
    logout, startup re-validation and theme updates through a Gateway.
*/
package session

import (
	"sync"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
)

// Snapshot is an immutable view of the session at one point in time.
//
// Invariant: User is non-nil if and only if Token is non-empty, except
// during the brief window at startup where a persisted token exists but
// has not been re-validated yet.
type Snapshot struct {
	User    *gateway.User
	Token   string
	Loading bool
}

// Authenticated reports whether the snapshot carries a validated account.
func (s Snapshot) Authenticated() bool { return s.User != nil && s.Token != "" }

// Store is the single source of truth for the client's session state.
//
// Every read goes through Get, which returns a copy; callers never hold a
// reference into the store's internals. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	user    *gateway.User
	token   string
	loading bool

	storage TokenStorage
}

// NewStore creates a Store over the given token storage and seeds it with
// any previously persisted token. Loading starts true; the Manager's
// startup pass lowers it exactly once.
func NewStore(storage TokenStorage) (*Store, error) {
	token, err := storage.Load()
	if err != nil {
		return nil, err
	}

	return &Store{
		token:   token,
		loading: true,
		storage: storage,
	}, nil
}

// Get returns the current session snapshot.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{User: cloneUser(s.user), Token: s.token, Loading: s.loading}
}

// SetSession installs an authenticated session and persists its token.
//
// State and durable storage change together: if the token cannot be
// persisted, the in-memory session is left untouched and the error is
// returned.
func (s *Store) SetSession(user *gateway.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		return err
	}

	s.user = cloneUser(user)
	s.token = token

	return nil
}

// Clear drops the session and removes the persisted token. Clearing an
// already-empty session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(); err != nil {
		return err
	}

	s.user = nil
	s.token = ""

	return nil
}

// SetUser replaces only the user profile, leaving the token untouched. Used
// when the server returns a refreshed profile, a theme update included.
func (s *Store) SetUser(user *gateway.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = cloneUser(user)
}

// SetLoading flips the startup re-validation flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = loading
}

// cloneUser copies the profile so snapshots never alias store state.
func cloneUser(user *gateway.User) *gateway.User {
	if user == nil {
		return nil
	}

	clone := *user
	return &clone
}
