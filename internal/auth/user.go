// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

// Package auth implements the identity core of the Cloud Storage platform.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the system. They have no
// dependencies on outer layers (databases, HTTP, or libraries), which keeps
// the core logic testable and resilient to technology changes.
package auth

import (
	"time"
)

// Theme represents a user's persisted presentation preference.
//
// It lives on the server because the preference round-trips through the API
// and must survive across devices, not just browser reloads.
type Theme string

const (
	ThemeLight Theme = "light" // Default theme for new accounts.
	ThemeDark  Theme = "dark"
)

// IsValid reports whether the theme is one of the two supported values.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// User represents a registered member of the Cloud Storage platform.
//
// # Rules
//   - Username is unique.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively via the auth Service.
//   - Theme is always one of the two [Theme] values, never empty.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Theme        Theme     `json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
}
