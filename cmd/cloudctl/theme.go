// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
)

// NewThemeCmd creates the theme subcommand.
func NewThemeCmd(application *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or switch the color theme",
		Long: `Without an argument, print the signed-in account's current theme.
With one, switch the account to that theme.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := application.manager.Session()
			if !snapshot.Authenticated() {
				return fmt.Errorf("not signed in")
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), snapshot.User.Theme)
				return nil
			}

			theme := gateway.Theme(args[0])
			if theme != gateway.ThemeLight && theme != gateway.ThemeDark {
				return fmt.Errorf("unknown theme %q (expected light or dark)", args[0])
			}

			if err := application.manager.UpdateTheme(cmd.Context(), theme); err != nil {
				return reportAuthError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)

			return nil
		},
	}
}
