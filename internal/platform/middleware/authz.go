// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package middleware

import (
	"net/http"
	"strings"

	"github.com/qwsnxnjene/cloud-storage/internal/platform/apperr"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/ctxutil"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/respond"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/sec"
)

// TokenVerifier defines the contract for validating bearer tokens.
//
// Implemented by [sec.TokenService]; abstracted so handler tests can inject
// a stub verifier without signing real tokens.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate parses the Authorization header and, when a valid bearer
// token is present, attaches the decoded claims to the request context.
//
// # Anonymous Access
//
// Requests without an Authorization header pass through untouched. Routes
// that need an identity must additionally be wrapped in [RequireAuth].
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
