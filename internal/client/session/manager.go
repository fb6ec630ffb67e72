// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
)

// State is the session lifecycle phase.
type State int

const (
	// StateUninitialized means Start has not run yet.
	StateUninitialized State = iota
	// StateValidating means a persisted token is being re-validated.
	StateValidating
	// StateAuthenticated means a validated account is signed in.
	StateAuthenticated
	// StateAnonymous means nobody is signed in.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Gateway is the auth API surface the Manager drives.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*gateway.Credentials, error)
	Register(ctx context.Context, username, email, password string) (*gateway.Credentials, error)
	Profile(ctx context.Context, token string) (*gateway.User, error)
	UpdateTheme(ctx context.Context, token string, theme gateway.Theme) (*gateway.User, error)
}

// Manager owns the session lifecycle.
//
// Transitions:
//
//	UNINITIALIZED ── Start, no persisted token ──▶ ANONYMOUS
//	UNINITIALIZED ── Start, persisted token ─────▶ VALIDATING
//	VALIDATING ──── profile ok ──────────────────▶ AUTHENTICATED
//	VALIDATING ──── profile rejected ────────────▶ ANONYMOUS
//	ANONYMOUS ───── login / register ok ─────────▶ AUTHENTICATED
//	AUTHENTICATED ─ logout ──────────────────────▶ ANONYMOUS
//
// A failed login or registration leaves the state and the store untouched.
type Manager struct {
	store   *Store
	gateway Gateway
	logger  *slog.Logger

	mu        sync.Mutex
	state     State
	startOnce sync.Once
}

// NewManager wires a Manager over its store and gateway.
func NewManager(store *Store, gw Gateway, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:   store,
		gateway: gw,
		logger:  logger,
		state:   StateUninitialized,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns the current session snapshot.
func (m *Manager) Session() Snapshot {
	return m.store.Get()
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

// Start runs the one-time startup pass: if a token survived the last run it
// is re-validated against the API, otherwise the session begins anonymous.
//
// A rejected or unreachable token is dropped silently — the user simply
// starts signed out. Start never returns an error and subsequent calls are
// no-ops.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		defer m.store.SetLoading(false)

		token := m.store.Get().Token
		if token == "" {
			m.setState(StateAnonymous)
			return
		}

		m.setState(StateValidating)

		user, err := m.gateway.Profile(ctx, token)
		if err != nil {
			m.logger.Debug("persisted token rejected, starting anonymous", slog.String("error", err.Error()))

			if clearErr := m.store.Clear(); clearErr != nil {
				m.logger.Warn("failed to drop stale token", slog.String("error", clearErr.Error()))
			}
			m.setState(StateAnonymous)
			return
		}

		m.store.SetUser(user)
		m.setState(StateAuthenticated)
	})
}

// Login signs in with the given credentials.
//
// On success the store holds the new session atomically (user, token and
// persisted copy together). On failure nothing changes and the returned
// error is the gateway's *gateway.AuthError.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	credentials, err := m.gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := m.store.SetSession(credentials.User, credentials.Token); err != nil {
		return &gateway.AuthError{Message: err.Error()}
	}

	m.setState(StateAuthenticated)
	m.logger.Info("signed in", slog.String("username", credentials.User.Username))

	return nil
}

// Register creates an account and signs straight into it, mirroring Login's
// success and failure contracts.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	credentials, err := m.gateway.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	if err := m.store.SetSession(credentials.User, credentials.Token); err != nil {
		return &gateway.AuthError{Message: err.Error()}
	}

	m.setState(StateAuthenticated)
	m.logger.Info("registered and signed in", slog.String("username", credentials.User.Username))

	return nil
}

// Logout drops the session locally. No server call is made and logging out
// while signed out is harmless.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	m.setState(StateAnonymous)

	return nil
}

// UpdateTheme switches the signed-in account's color scheme and refreshes
// the stored profile with the server's response. The token is untouched;
// on failure the session is left exactly as it was.
func (m *Manager) UpdateTheme(ctx context.Context, theme gateway.Theme) error {
	snapshot := m.store.Get()
	if !snapshot.Authenticated() {
		return &gateway.AuthError{Message: "Authentication required"}
	}

	user, err := m.gateway.UpdateTheme(ctx, snapshot.Token, theme)
	if err != nil {
		return err
	}

	m.store.SetUser(user)

	return nil
}
