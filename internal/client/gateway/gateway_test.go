// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
)

// envelope wraps a payload the way the API does.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data}
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	require.NoError(t, json.NewEncoder(writer).Encode(body))
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/api/auth/login", request.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["username"])
		assert.Equal(t, "secret12", body["password"])

		writeJSON(t, writer, http.StatusOK, envelope(map[string]interface{}{
			"token": "tok-1",
			"user": map[string]string{
				"id":       "u-1",
				"username": "user@example.com",
				"theme":    "light",
			},
		}))
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	credentials, err := client.Login(context.Background(), "user@example.com", "secret12")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", credentials.Token)
	require.NotNil(t, credentials.User)
	assert.Equal(t, "u-1", credentials.User.ID)
	assert.Equal(t, gateway.ThemeLight, credentials.User.Theme)
}

func TestLoginRejectionCarriesFieldHints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnauthorized, map[string]string{
			"error": "Неверный пароль",
			"code":  "UNAUTHORIZED",
		})
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	_, err := client.Login(context.Background(), "user@example.com", "wrongpass1")
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)

	assert.Equal(t, "Неверный пароль", authError.Message)
	assert.Equal(t, map[string]string{
		"username": "Неверный пароль",
		"password": "",
	}, authError.FieldHints)
}

func TestLoginTransportFailureUsesFallbackMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	client := gateway.New(server.URL)

	_, err := client.Login(context.Background(), "user@example.com", "secret12")
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)

	assert.Equal(t, "Произошла ошибка при авторизации", authError.Message)
	assert.Equal(t, "Произошла ошибка при авторизации", authError.FieldHints["username"])
}

func TestRegisterRejectionBlanksEmailHint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/auth/register", request.URL.Path)

		writeJSON(t, writer, http.StatusConflict, map[string]string{
			"error": "Username or email is already registered",
			"code":  "CONFLICT",
		})
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	_, err := client.Register(context.Background(), "Ян", "yan@example.com", "secret12")
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)

	assert.Equal(t, map[string]string{
		"username": "Username or email is already registered",
		"email":    "",
		"password": "",
	}, authError.FieldHints)
}

func TestProfileSendsBearerToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "Bearer tok-1", request.Header.Get("Authorization"))

		writeJSON(t, writer, http.StatusOK, envelope(map[string]string{
			"id":       "u-1",
			"username": "user@example.com",
			"theme":    "dark",
		}))
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	user, err := client.Profile(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, gateway.ThemeDark, user.Theme)
}

func TestProfileRejectionHasNoFieldHints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnauthorized, map[string]string{
			"error": "Authentication required",
			"code":  "UNAUTHORIZED",
		})
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	_, err := client.Profile(context.Background(), "stale-token")
	require.Error(t, err)

	authError, ok := err.(*gateway.AuthError)
	require.True(t, ok)

	assert.Equal(t, "Authentication required", authError.Message)
	assert.Nil(t, authError.FieldHints)
}

func TestUpdateThemeRoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, "/api/auth/theme", request.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "dark", body["theme"])

		writeJSON(t, writer, http.StatusOK, envelope(map[string]string{
			"id":    "u-1",
			"theme": "dark",
		}))
	}))
	defer server.Close()

	client := gateway.New(server.URL)

	user, err := client.UpdateTheme(context.Background(), "tok-1", gateway.ThemeDark)
	require.NoError(t, err)

	assert.Equal(t, gateway.ThemeDark, user.Theme)
}
