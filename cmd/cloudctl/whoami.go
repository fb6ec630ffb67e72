// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami subcommand.
func NewWhoamiCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Long: `Show the signed-in account, as re-validated against the API at startup.
A persisted token the server no longer accepts is silently dropped, so this
command also reveals whether a stale session was cleaned up.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot := application.manager.Session()
			if !snapshot.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}

			printSession(cmd, snapshot)

			return nil
		},
	}
}
