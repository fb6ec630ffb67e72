// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"github.com/spf13/cobra"

	"github.com/qwsnxnjene/cloud-storage/internal/client/forms"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(application *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Cloud Storage",
		Long: `Sign in with an existing account. The password is always prompted and
never echoed. On success the session token is persisted for later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = promptLine(cmd, "Почта: "); err != nil {
					return err
				}
			}

			password, err := promptPassword(cmd, "Пароль: ")
			if err != nil {
				return err
			}

			values := map[string]string{"username": username, "password": password}
			if err := validateOrReport(cmd, forms.Login, values); err != nil {
				return err
			}

			if err := application.manager.Login(cmd.Context(), username, password); err != nil {
				return reportAuthError(cmd, err)
			}

			printSession(cmd, application.manager.Session())

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name (prompted when omitted)")

	return cmd
}
