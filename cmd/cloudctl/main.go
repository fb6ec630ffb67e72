// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

// Package main is the cloudctl command line client for the Cloud Storage
// auth API: sign in, register, inspect the session, toggle the theme.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Best effort: absence of a .env file is the common case.
	_ = godotenv.Load()

	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
