// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

/*
Package gateway is the HTTP client for the cloud-storage auth API.

It speaks the server's JSON envelopes and normalizes every failure — HTTP
error status, malformed body, transport error — into a single AuthError
shape before it reaches the session layer. Callers never see a raw
*url.Error or a half-decoded envelope.

Field attribution is part of the normalization: a failed login pins the
server message on the username field and blanks the password hint, a failed
registration additionally blanks the email hint. The session layer and the
view render the hints as-is.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// # Wire Model

// Theme is a user interface color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User is the account profile as the API serves it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Theme     Theme     `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is an authenticated session as returned by login and register.
type Credentials struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// # Error Normalization

// AuthError is the uniform failure shape of every gateway operation.
type AuthError struct {
	// Message is the human-readable failure text, preferring the server's
	// own message when one was decoded.
	Message string
	// FieldHints attributes the failure to form fields. A present key with
	// an empty value means "this field participated, but show no text".
	FieldHints map[string]string
}

func (e *AuthError) Error() string { return e.Message }

// fallback messages shown when the server sent no usable error text.
const (
	fallbackLoginMessage    = "Произошла ошибка при авторизации"
	fallbackRegisterMessage = "Произошла ошибка при регистрации"
)

// loginFieldHints attaches the failure message to the username field and
// blanks the password, matching how the sign-in form has always rendered
// server rejections.
func loginFieldHints(message string) map[string]string {
	return map[string]string{
		"username": message,
		"password": "",
	}
}

// registerFieldHints additionally blanks the email field.
func registerFieldHints(message string) map[string]string {
	return map[string]string{
		"username": message,
		"email":    "",
		"password": "",
	}
}

// # Client

// Client talks to one auth API instance. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTimeout bounds every request round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// # Operations

// Login exchanges credentials for a token and profile.
//
// Every failure is returned as *AuthError with login field hints attached.
func (c *Client) Login(ctx context.Context, username, password string) (*Credentials, error) {
	body := map[string]string{"username": username, "password": password}

	var credentials Credentials
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", "", body, &credentials); err != nil {
		return nil, normalize(err, fallbackLoginMessage, loginFieldHints)
	}

	return &credentials, nil
}

// Register creates an account and returns the fresh session.
//
// Every failure is returned as *AuthError with register field hints attached.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var credentials Credentials
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", "", body, &credentials); err != nil {
		return nil, normalize(err, fallbackRegisterMessage, registerFieldHints)
	}

	return &credentials, nil
}

// Profile fetches the account behind the token. It is the re-validation
// probe used at startup: an error here means the token is no longer good.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.call(ctx, http.MethodGet, "/api/auth/profile", token, nil, &user); err != nil {
		return nil, normalize(err, "", nil)
	}

	return &user, nil
}

// UpdateTheme switches the stored color scheme and returns the updated
// profile.
func (c *Client) UpdateTheme(ctx context.Context, token string, theme Theme) (*User, error) {
	body := map[string]string{"theme": string(theme)}

	var user User
	if err := c.call(ctx, http.MethodPut, "/api/auth/theme", token, body, &user); err != nil {
		return nil, normalize(err, "", nil)
	}

	return &user, nil
}

// # HTTP Plumbing

// successEnvelope and errorEnvelope mirror the server's response wrappers.
type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// apiError is the pre-normalization form of a decoded server rejection.
type apiError struct {
	status  int
	message string
	code    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %s (status %d, code %s)", e.message, e.status, e.code)
}

// call performs one request/response cycle against the API.
//
//	── 1. Encode ────────────────────────────────────────────────
//	── 2. Send ──────────────────────────────────────────────────
//	── 3. Decode envelope ───────────────────────────────────────
func (c *Client) call(ctx context.Context, method, path, token string, body, out interface{}) error {
	var requestBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		requestBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, requestBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		var envelope errorEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Error == "" {
			return &apiError{status: response.StatusCode, message: "", code: ""}
		}
		return &apiError{status: response.StatusCode, message: envelope.Error, code: envelope.Code}
	}

	if out == nil {
		return nil
	}

	var envelope successEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}

// normalize collapses any call failure into an *AuthError.
//
// The server's own message wins when one was decoded; otherwise the
// operation's fallback text is used. hints may be nil for operations whose
// failures have no form to annotate.
func normalize(err error, fallbackMessage string, hints func(string) map[string]string) *AuthError {
	message := fallbackMessage

	var decoded *apiError
	if errors.As(err, &decoded) && decoded.message != "" {
		message = decoded.message
	}

	if message == "" {
		message = err.Error()
	}

	authError := &AuthError{Message: message}
	if hints != nil {
		authError.FieldHints = hints(message)
	}

	return authError
}
