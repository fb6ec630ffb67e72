// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
	"github.com/qwsnxnjene/cloud-storage/internal/client/session"
)

// fakeGateway scripts the auth API for manager tests.
type fakeGateway struct {
	loginCredentials    *gateway.Credentials
	loginError          error
	registerCredentials *gateway.Credentials
	registerError       error
	profileUser         *gateway.User
	profileError        error
	themeUser           *gateway.User
	themeError          error

	profileCalls int
	themeToken   string
}

func (f *fakeGateway) Login(context.Context, string, string) (*gateway.Credentials, error) {
	return f.loginCredentials, f.loginError
}

func (f *fakeGateway) Register(context.Context, string, string, string) (*gateway.Credentials, error) {
	return f.registerCredentials, f.registerError
}

func (f *fakeGateway) Profile(_ context.Context, token string) (*gateway.User, error) {
	f.profileCalls++
	return f.profileUser, f.profileError
}

func (f *fakeGateway) UpdateTheme(_ context.Context, token string, _ gateway.Theme) (*gateway.User, error) {
	f.themeToken = token
	return f.themeUser, f.themeError
}

func newManager(t *testing.T, storage session.TokenStorage, fake *fakeGateway) (*session.Manager, *session.Store) {
	t.Helper()

	store, err := session.NewStore(storage)
	require.NoError(t, err)

	return session.NewManager(store, fake, nil), store
}

func TestStartWithoutTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	fake := &fakeGateway{}
	manager, store := newManager(t, session.NewMemoryTokenStorage(), fake)

	manager.Start(context.Background())

	assert.Equal(t, session.StateAnonymous, manager.State())
	assert.False(t, store.Get().Loading)
	assert.Zero(t, fake.profileCalls, "no profile probe without a token")
}

func TestStartRevalidatesPersistedToken(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	require.NoError(t, storage.Save("tok-1"))

	fake := &fakeGateway{profileUser: &gateway.User{ID: "u-1", Username: "user@example.com"}}
	manager, store := newManager(t, storage, fake)

	manager.Start(context.Background())

	assert.Equal(t, session.StateAuthenticated, manager.State())

	snapshot := store.Get()
	assert.False(t, snapshot.Loading)
	assert.Equal(t, "tok-1", snapshot.Token)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u-1", snapshot.User.ID)
}

func TestStartDropsStaleTokenSilently(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	require.NoError(t, storage.Save("stale-token"))

	fake := &fakeGateway{profileError: &gateway.AuthError{Message: "Authentication required"}}
	manager, store := newManager(t, storage, fake)

	manager.Start(context.Background())

	assert.Equal(t, session.StateAnonymous, manager.State())

	snapshot := store.Get()
	assert.False(t, snapshot.Loading)
	assert.Empty(t, snapshot.Token)
	assert.Nil(t, snapshot.User)

	// The stale token is gone from durable storage too.
	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStartRunsOnlyOnce(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	require.NoError(t, storage.Save("tok-1"))

	fake := &fakeGateway{profileUser: &gateway.User{ID: "u-1"}}
	manager, _ := newManager(t, storage, fake)

	manager.Start(context.Background())
	manager.Start(context.Background())

	assert.Equal(t, 1, fake.profileCalls)
}

func TestLoginSuccessInstallsSession(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	fake := &fakeGateway{loginCredentials: &gateway.Credentials{
		Token: "tok-1",
		User:  &gateway.User{ID: "u-1", Username: "user@example.com"},
	}}
	manager, store := newManager(t, storage, fake)
	manager.Start(context.Background())

	require.NoError(t, manager.Login(context.Background(), "user@example.com", "secret12"))

	assert.Equal(t, session.StateAuthenticated, manager.State())

	snapshot := store.Get()
	assert.Equal(t, "tok-1", snapshot.Token)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "user@example.com", snapshot.User.Username)

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	fake := &fakeGateway{loginError: &gateway.AuthError{
		Message:    "Неверный пароль",
		FieldHints: map[string]string{"username": "Неверный пароль", "password": ""},
	}}
	manager, store := newManager(t, session.NewMemoryTokenStorage(), fake)
	manager.Start(context.Background())

	err := manager.Login(context.Background(), "user@example.com", "wrongpass1")
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)
	assert.Equal(t, "Неверный пароль", authError.Message)

	assert.Equal(t, session.StateAnonymous, manager.State())
	snapshot := store.Get()
	assert.Nil(t, snapshot.User)
	assert.Empty(t, snapshot.Token)
}

func TestRegisterSuccessSignsIn(t *testing.T) {
	t.Parallel()

	fake := &fakeGateway{registerCredentials: &gateway.Credentials{
		Token: "tok-1",
		User:  &gateway.User{ID: "u-1", Username: "Ян"},
	}}
	manager, store := newManager(t, session.NewMemoryTokenStorage(), fake)
	manager.Start(context.Background())

	require.NoError(t, manager.Register(context.Background(), "Ян", "yan@example.com", "secret12"))

	assert.Equal(t, session.StateAuthenticated, manager.State())
	assert.True(t, store.Get().Authenticated())
}

func TestLogoutIsLocalAndIdempotent(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	fake := &fakeGateway{loginCredentials: &gateway.Credentials{
		Token: "tok-1",
		User:  &gateway.User{ID: "u-1"},
	}}
	manager, store := newManager(t, storage, fake)
	manager.Start(context.Background())

	require.NoError(t, manager.Login(context.Background(), "user@example.com", "secret12"))

	require.NoError(t, manager.Logout())
	require.NoError(t, manager.Logout())

	assert.Equal(t, session.StateAnonymous, manager.State())
	assert.Nil(t, store.Get().User)

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestUpdateThemeReplacesProfileOnly(t *testing.T) {
	t.Parallel()

	fake := &fakeGateway{
		loginCredentials: &gateway.Credentials{
			Token: "tok-1",
			User:  &gateway.User{ID: "u-1", Theme: gateway.ThemeLight},
		},
		themeUser: &gateway.User{ID: "u-1", Theme: gateway.ThemeDark},
	}
	manager, store := newManager(t, session.NewMemoryTokenStorage(), fake)
	manager.Start(context.Background())

	require.NoError(t, manager.Login(context.Background(), "user@example.com", "secret12"))
	require.NoError(t, manager.UpdateTheme(context.Background(), gateway.ThemeDark))

	assert.Equal(t, "tok-1", fake.themeToken)

	snapshot := store.Get()
	assert.Equal(t, gateway.ThemeDark, snapshot.User.Theme)
	assert.Equal(t, "tok-1", snapshot.Token, "token survives a theme update")
}

func TestUpdateThemeFailureLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	fake := &fakeGateway{
		loginCredentials: &gateway.Credentials{
			Token: "tok-1",
			User:  &gateway.User{ID: "u-1", Theme: gateway.ThemeLight},
		},
		themeError: &gateway.AuthError{Message: "Invalid theme"},
	}
	manager, store := newManager(t, session.NewMemoryTokenStorage(), fake)
	manager.Start(context.Background())

	require.NoError(t, manager.Login(context.Background(), "user@example.com", "secret12"))

	err := manager.UpdateTheme(context.Background(), gateway.Theme("sepia"))
	require.Error(t, err)

	snapshot := store.Get()
	assert.Equal(t, gateway.ThemeLight, snapshot.User.Theme)
	assert.Equal(t, session.StateAuthenticated, manager.State())
}

func TestUpdateThemeRequiresAuthentication(t *testing.T) {
	t.Parallel()

	manager, _ := newManager(t, session.NewMemoryTokenStorage(), &fakeGateway{})
	manager.Start(context.Background())

	err := manager.UpdateTheme(context.Background(), gateway.ThemeDark)
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)
	assert.Equal(t, "Authentication required", authError.Message)
}
