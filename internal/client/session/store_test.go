// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
	"github.com/qwsnxnjene/cloud-storage/internal/client/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()

	store, err := session.NewStore(session.NewMemoryTokenStorage())
	require.NoError(t, err)

	return store
}

func TestStoreSessionRoundTrip(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	store, err := session.NewStore(storage)
	require.NoError(t, err)

	user := &gateway.User{ID: "u-1", Username: "user@example.com", Theme: gateway.ThemeLight}
	require.NoError(t, store.SetSession(user, "tok-1"))

	snapshot := store.Get()
	assert.Equal(t, "tok-1", snapshot.Token)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u-1", snapshot.User.ID)
	assert.True(t, snapshot.Authenticated())

	// The token survives in durable storage too.
	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted)

	require.NoError(t, store.Clear())

	snapshot = store.Get()
	assert.Nil(t, snapshot.User)
	assert.Empty(t, snapshot.Token)

	persisted, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	snapshot := store.Get()
	assert.Nil(t, snapshot.User)
	assert.Empty(t, snapshot.Token)
}

func TestStoreSnapshotDoesNotAliasState(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	require.NoError(t, store.SetSession(&gateway.User{ID: "u-1", Theme: gateway.ThemeLight}, "tok-1"))

	snapshot := store.Get()
	snapshot.User.Theme = gateway.ThemeDark

	assert.Equal(t, gateway.ThemeLight, store.Get().User.Theme)
}

func TestStoreSeedsPersistedToken(t *testing.T) {
	t.Parallel()

	storage := session.NewMemoryTokenStorage()
	require.NoError(t, storage.Save("tok-1"))

	store, err := session.NewStore(storage)
	require.NoError(t, err)

	snapshot := store.Get()
	assert.Equal(t, "tok-1", snapshot.Token)
	assert.Nil(t, snapshot.User)
	assert.True(t, snapshot.Loading)
}

func TestFileTokenStorage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "token")
	storage := session.NewFileTokenStorage(path)

	// Missing file means no token, not an error.
	token, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, storage.Save("tok-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, storage.Remove())
	require.NoError(t, storage.Remove())

	token, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
