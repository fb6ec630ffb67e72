// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the local session",
		Long: `Drop the local session and delete the persisted token. No server call
is made; logging out while already signed out is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := application.manager.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")

			return nil
		},
	}
}
