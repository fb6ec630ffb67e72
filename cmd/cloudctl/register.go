// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"github.com/spf13/cobra"

	"github.com/qwsnxnjene/cloud-storage/internal/client/forms"
)

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd(application *app) *cobra.Command {
	var (
		username string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a Cloud Storage account",
		Long: `Create an account and sign straight into it. Missing fields are
prompted interactively; the password is never echoed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = promptLine(cmd, "Имя: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine(cmd, "Почта: "); err != nil {
					return err
				}
			}

			password, err := promptPassword(cmd, "Пароль: ")
			if err != nil {
				return err
			}

			values := map[string]string{"username": username, "email": email, "password": password}
			if err := validateOrReport(cmd, forms.Register, values); err != nil {
				return err
			}

			if err := application.manager.Register(cmd.Context(), username, email, password); err != nil {
				return reportAuthError(cmd, err)
			}

			printSession(cmd, application.manager.Session())

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "display name (prompted when omitted)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address (prompted when omitted)")

	return cmd
}
