// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/ctxutil"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/middleware"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/respond"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON Request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and signs it in.
//   - POST /login    : Authenticates and returns a bearer token.
//   - GET  /profile  : Returns the caller's account (requires auth).
//   - PUT  /theme    : Updates the caller's theme preference (requires auth).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/profile", handler.profile)
		protected.Put("/theme", handler.updateTheme)
	})

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// themeUpdateRequest represents the JSON payload for a theme change.
type themeUpdateRequest struct {
	Theme string `json:"theme"`
}

// authResponse is the wire shape shared by register and login.
type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// register handles POST /api/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the token and user profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if email/username is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// The browser and CLI clients enforce the same bounds before submitting;
	// the server re-checks because it must not trust any client.
	validator := &validate.Validator{}
	err := validator.
		Required("username", input.Username).
		MinLen("username", input.Username, 2).
		MaxLen("username", input.Username, 20).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8).
		MaxLen("password", input.Password, 14).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, authResponse{Token: session.Token, User: session.User})
}

// login handles POST /api/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token and user profile.
//   - Writes HTTP 401 Unauthorized for bad credentials.
//   - Writes HTTP 429 Too Many Requests when the login name is throttled.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	err := validator.
		Required("username", input.Username).
		Required("password", input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		// 401 without distinguishing unknown-name from wrong-password in the
		// status; the message text follows the historical frontend contract.
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, authResponse{Token: session.Token, User: session.User})
}

// profile handles GET /api/auth/profile requests.
//
// The route is mounted behind [middleware.RequireAuth], so claims are
// guaranteed to be present in the context.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())

	user, err := handler.authService.Profile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateTheme handles PUT /api/auth/theme requests.
//
// # Returns
//   - Writes HTTP 200 OK with the full updated user record.
//   - Writes HTTP 400 Bad Request for an unknown theme value.
func (handler *Handler) updateTheme(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())

	var input themeUpdateRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		OneOf("theme", input.Theme, string(ThemeLight), string(ThemeDark)).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateTheme(request.Context(), claims.UserID, Theme(input.Theme))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
