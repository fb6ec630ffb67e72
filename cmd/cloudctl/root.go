// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qwsnxnjene/cloud-storage/internal/client/forms"
	"github.com/qwsnxnjene/cloud-storage/internal/client/gateway"
	"github.com/qwsnxnjene/cloud-storage/internal/client/session"
	"github.com/qwsnxnjene/cloud-storage/internal/platform/config"
)

// Global flags available to all subcommands.
var verbose bool

// app carries the wired session layer into every subcommand.
type app struct {
	manager *session.Manager
}

// NewRootCmd creates the root command for the cloudctl CLI.
func NewRootCmd() *cobra.Command {
	application := &app{}

	cmd := &cobra.Command{
		Use:   "cloudctl",
		Short: "Cloud Storage command line client",
		Long: `cloudctl talks to a Cloud Storage API: register an account, sign in
and out, inspect the current session, and switch the color theme.

The session token is persisted under the user config directory, so a
successful sign-in survives until "cloudctl logout".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return application.wire(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(NewLoginCmd(application))
	cmd.AddCommand(NewRegisterCmd(application))
	cmd.AddCommand(NewLogoutCmd(application))
	cmd.AddCommand(NewWhoamiCmd(application))
	cmd.AddCommand(NewThemeCmd(application))

	return cmd
}

// wire builds the session manager from the environment and runs the
// one-time startup re-validation pass.
func (a *app) wire(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store, err := session.NewStore(session.NewFileTokenStorage(cfg.TokenPath))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	a.manager = session.NewManager(store, gateway.New(cfg.APIBaseURL), logger)
	a.manager.Start(cmd.Context())

	return nil
}

// # Shared Console Helpers

// promptLine reads one visible input line.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptPassword reads a line without echoing it. Falls back to a visible
// prompt when stdin is not a terminal (pipes in tests and scripts).
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return promptLine(cmd, prompt)
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)

	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// printFieldErrors renders per-field failures, client-side validation and
// server hints alike. Blank hints mark a field as involved without text and
// are skipped.
func printFieldErrors(cmd *cobra.Command, fieldErrors map[string]string) {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if fieldErrors[field] == "" {
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, fieldErrors[field])
	}
}

// validateOrReport runs a form rule set and reports failures to the user.
func validateOrReport(cmd *cobra.Command, ruleSet forms.RuleSet, values map[string]string) error {
	result := ruleSet.Validate(values)
	if result.Valid() {
		return nil
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Форма заполнена неверно:")
	printFieldErrors(cmd, map[string]string(result))

	return fmt.Errorf("%s form is invalid", ruleSet.Name)
}

// reportAuthError renders a gateway failure with its field hints.
func reportAuthError(cmd *cobra.Command, err error) error {
	if authError, ok := err.(*gateway.AuthError); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), authError.Message)
		printFieldErrors(cmd, authError.FieldHints)
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())

	return err
}

// printSession renders the signed-in dashboard summary.
func printSession(cmd *cobra.Command, snapshot session.Snapshot) {
	user := snapshot.User

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Username)
	if user.Email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  email: %s\n", user.Email)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  theme: %s\n", user.Theme)
}
