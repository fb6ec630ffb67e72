// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/apperr"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/constants"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/sec"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	loginThrottle  LoginThrottle
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	throttle LoginThrottle,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository: userRepo,
		loginThrottle:  throttle,
		tokenProvider:  tokenProv,
	}
}

// LoginSession represents a successfully established user session.
//
// The token is a stateless bearer credential; the client persists it and
// presents it on every authenticated call until it expires or is discarded.
type LoginSession struct {
	Token string
	User  *User
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Returns
//   - A [*LoginSession] so the fresh account is signed in immediately.
//   - Returns [apperr.Conflict] if email or username already exists.
//
// # Business Rules
//   - Emails must be unique.
//   - Usernames must be unique.
//   - New accounts always start with the light theme.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*LoginSession, error) {
	// ── 1. Uniqueness Checks ──────────────────────────────────────────────

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           newUserID(), // Time-sortable ID to prevent PG index fragmentation.
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Theme:        ThemeLight,
		CreatedAt:    time.Now(),
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(ctx, user); err != nil {
		// The repository maps unique violations to apperr.Conflict; anything
		// else is unexpected and propagated as-is.
		return nil, err
	}

	return service.issueSession(user)
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// Login validates user credentials and issues a bearer token.
//
// # Returns
//   - A [*LoginSession] containing the token and the full user profile.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//   - Returns [apperr.RateLimited] when the login name is being brute-forced.
//
// # Flow
//  1. Check the failed-attempt budget for the login name.
//  2. Lookup user by username.
//  3. Verify password hash using Bcrypt.
//  4. Issue the signed bearer token and reset the throttle.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Throttling ─────────────────────────────────────────────────────

	tooMany, retryAfter, err := service.loginThrottle.TooMany(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_throttle_check_failed: %w", err)
	}
	if tooMany {
		return nil, apperr.RateLimited(int(retryAfter.Seconds()))
	}

	// ── 2. Fetch User Profile ─────────────────────────────────────────────

	user, err := service.userRepository.FindByUsername(ctx, input.Username)
	if err != nil {
		_ = service.loginThrottle.RecordFailure(ctx, input.Username)
		return nil, apperr.Unauthorized("Неверные данные")
	}

	// ── 3. Security Verification ──────────────────────────────────────────

	// Bcrypt performs a constant-time comparison internally, preventing
	// timing attacks on the hash check.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		_ = service.loginThrottle.RecordFailure(ctx, input.Username)
		return nil, apperr.Unauthorized("Неверный пароль")
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	if err := service.loginThrottle.Reset(ctx, input.Username); err != nil {
		return nil, fmt.Errorf("auth_service_throttle_reset_failed: %w", err)
	}

	return service.issueSession(user)
}

// Profile returns the full account record for the authenticated user.
//
// It is used by clients at startup to re-validate a persisted token: a valid
// signature on a deleted account still yields [apperr.NotFound] here.
func (service *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// UpdateTheme persists a new theme preference and returns the updated user.
//
// # Business Rules
//   - Theme must be one of the two [Theme] values (checked at the boundary
//     and re-checked here so no storage path can write a third value).
func (service *Service) UpdateTheme(ctx context.Context, userID string, theme Theme) (*User, error) {
	if !theme.IsValid() {
		return nil, apperr.ValidationError("Theme must be 'light' or 'dark'")
	}

	if err := service.userRepository.UpdateTheme(ctx, userID, theme); err != nil {
		return nil, err
	}

	// Re-read so the response carries the full, current record.
	return service.userRepository.FindByID(ctx, userID)
}

// issueSession signs a bearer token for the user and bundles it with the profile.
func (service *Service) issueSession(user *User) (*LoginSession, error) {
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		Token: token,
		User:  user,
	}, nil
}

// newUserID returns a time-sortable UUIDv7 string, falling back to v4 when
// the monotonic source fails.
func newUserID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
