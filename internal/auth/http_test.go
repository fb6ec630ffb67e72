// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwsnxnjene/cloud-storage/internal/auth"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/middleware"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/sec"
)

// newAuthServer wires the handler behind the real token middleware, so the
// bearer flow is exercised end to end against an in-memory repository.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-secret-key", "cloud-storage")
	require.NoError(t, err)

	service := auth.NewService(auth.NewMemoryUserRepository(), auth.NoopLoginThrottle{}, tokenService)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/api/auth", auth.NewHandler(service).Routes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	response, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)

	return response
}

// decodeData unwraps the success envelope into out.
func decodeData(t *testing.T, response *http.Response, out interface{}) {
	t.Helper()
	defer response.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, response *http.Response) (message, code string) {
	t.Helper()
	defer response.Body.Close()

	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))

	return envelope.Error, envelope.Code
}

type sessionPayload struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Theme    string `json:"theme"`
	} `json:"user"`
}

func registerAccount(t *testing.T, server *httptest.Server) sessionPayload {
	t.Helper()

	response := postJSON(t, server.URL+"/api/auth/register", map[string]string{
		"username": "yan",
		"email":    "yan@example.com",
		"password": "secret12",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var payload sessionPayload
	decodeData(t, response, &payload)

	return payload
}

func TestHTTP_RegisterCreatesSession(t *testing.T) {
	server := newAuthServer(t)

	payload := registerAccount(t, server)

	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "yan", payload.User.Username)
	assert.Equal(t, "light", payload.User.Theme)
}

func TestHTTP_RegisterValidation(t *testing.T) {
	server := newAuthServer(t)

	response := postJSON(t, server.URL+"/api/auth/register", map[string]string{
		"username": "y", // below minimum length
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	_, code := decodeError(t, response)
	assert.Equal(t, "VALIDATION_ERROR", code)
}

func TestHTTP_LoginRoundTrip(t *testing.T) {
	server := newAuthServer(t)
	registerAccount(t, server)

	response := postJSON(t, server.URL+"/api/auth/login", map[string]string{
		"username": "yan",
		"password": "secret12",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload sessionPayload
	decodeData(t, response, &payload)

	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "yan@example.com", payload.User.Email)
}

func TestHTTP_LoginWrongPassword(t *testing.T) {
	server := newAuthServer(t)
	registerAccount(t, server)

	response := postJSON(t, server.URL+"/api/auth/login", map[string]string{
		"username": "yan",
		"password": "wrongpass1",
	})

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	message, code := decodeError(t, response)
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Equal(t, "Неверный пароль", message)
}

func TestHTTP_LoginUnknownUser(t *testing.T) {
	server := newAuthServer(t)

	response := postJSON(t, server.URL+"/api/auth/login", map[string]string{
		"username": "ghost",
		"password": "secret12",
	})

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	message, _ := decodeError(t, response)
	assert.Equal(t, "Неверные данные", message)
}

func TestHTTP_ProfileRequiresToken(t *testing.T) {
	server := newAuthServer(t)

	response, err := http.Get(server.URL + "/api/auth/profile")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	_, code := decodeError(t, response)
	assert.Equal(t, "UNAUTHORIZED", code)
}

func TestHTTP_ProfileWithBearerToken(t *testing.T) {
	server := newAuthServer(t)
	payload := registerAccount(t, server)

	request, err := http.NewRequest(http.MethodGet, server.URL+"/api/auth/profile", nil)
	require.NoError(t, err)
	request.Header.Set("Authorization", "Bearer "+payload.Token)

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeData(t, response, &user)

	assert.Equal(t, payload.User.ID, user.ID)
	assert.Equal(t, "yan", user.Username)
}

func TestHTTP_ProfileRejectsGarbageToken(t *testing.T) {
	server := newAuthServer(t)

	request, err := http.NewRequest(http.MethodGet, server.URL+"/api/auth/profile", nil)
	require.NoError(t, err)
	request.Header.Set("Authorization", "Bearer not-a-jwt")

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestHTTP_UpdateTheme(t *testing.T) {
	server := newAuthServer(t)
	payload := registerAccount(t, server)

	body, err := json.Marshal(map[string]string{"theme": "dark"})
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPut, server.URL+"/api/auth/theme", bytes.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+payload.Token)

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var user struct {
		Theme string `json:"theme"`
	}
	decodeData(t, response, &user)

	assert.Equal(t, "dark", user.Theme)
}

func TestHTTP_UpdateThemeRejectsUnknownValue(t *testing.T) {
	server := newAuthServer(t)
	payload := registerAccount(t, server)

	body, err := json.Marshal(map[string]string{"theme": "sepia"})
	require.NoError(t, err)

	request, err := http.NewRequest(http.MethodPut, server.URL+"/api/auth/theme", bytes.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+payload.Token)

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	_, code := decodeError(t, response)
	assert.Equal(t, "VALIDATION_ERROR", code)
}
