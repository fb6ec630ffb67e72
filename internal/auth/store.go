// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]);
// an in-memory implementation ([MemoryUserRepository]) backs tests and
// single-binary demo deployments.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no user is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	//
	// Returns [apperr.Conflict] if a unique constraint (email/username) fails.
	Create(ctx context.Context, user *User) error

	// UpdateTheme replaces only the user's theme preference.
	// This is separate from a general update to prevent accidental
	// overwrites of identity fields from the preferences endpoint.
	UpdateTheme(ctx context.Context, userID string, theme Theme) error
}

// LoginThrottle defines the contract for counting failed login attempts.
//
// # Domain Ownership
//
// This is kept alongside [UserRepository] because throttling decisions are
// owned entirely by the auth domain, despite being backed by volatile storage.
type LoginThrottle interface {
	// TooMany reports whether the login name has exceeded its failed-attempt
	// budget, along with how long the caller should wait before retrying.
	TooMany(ctx context.Context, login string) (bool, time.Duration, error)

	// RecordFailure increments the failed-attempt counter for the login name.
	// The first failure in a window arms the window's TTL.
	RecordFailure(ctx context.Context, login string) error

	// Reset clears the counter after a successful authentication.
	Reset(ctx context.Context, login string) error
}
