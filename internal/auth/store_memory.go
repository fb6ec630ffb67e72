// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/apperr"
)

// MemoryUserRepository is an in-memory [UserRepository].
//
// It backs unit tests and the single-binary demo mode; no data survives a
// process restart.
//
// # Concurrency
//
// Safe for concurrent use. Reads take a shared lock, writes an exclusive one.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by user ID
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*User),
	}
}

// Create stores a new user, enforcing username and email uniqueness.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	clone := *user
	repository.users[user.ID] = &clone
	return nil
}

// FindByID returns the user with the given ID.
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}

	clone := *user
	return &clone, nil
}

// FindByEmail returns the user with the given email address.
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}

	return nil, apperr.NotFound("User")
}

// FindByUsername returns the user with the given username.
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}

	return nil, apperr.NotFound("User")
}

// UpdateTheme replaces the theme preference of the given account.
func (repository *MemoryUserRepository) UpdateTheme(_ context.Context, userID string, theme Theme) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}

	user.Theme = theme
	return nil
}

// NoopLoginThrottle is a [LoginThrottle] that never throttles.
//
// Used by tests and by the demo mode where no Redis is available.
type NoopLoginThrottle struct{}

// TooMany always allows the attempt.
func (NoopLoginThrottle) TooMany(context.Context, string) (bool, time.Duration, error) {
	return false, 0, nil
}

// RecordFailure is a no-op.
func (NoopLoginThrottle) RecordFailure(context.Context, string) error { return nil }

// Reset is a no-op.
func (NoopLoginThrottle) Reset(context.Context, string) error { return nil }
