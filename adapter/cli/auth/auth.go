// Package auth holds the authentication commands.
package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyonapp/halcyon/adapter/cli"
)

var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the signed-in session",
}

var (
	email       string
	password    string
	confirm     string
	acceptTerms bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		if err := app.Store.SignUp(cmd.Context(), email, password, confirm, acceptTerms); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Account created.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		if err := app.Store.SignIn(cmd.Context(), email, password); err != nil {
			return err
		}

		state := app.Store.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", state.Principal.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		if err := app.Store.SignOut(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Send a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		if err := app.Store.SendPasswordReset(cmd.Context(), email); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password reset sent to %s.\n", email)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("application not configured")
		}

		state := app.Store.State()
		fmt.Fprintf(cmd.OutOrStdout(), "User state: %s\n", state.UserState)
		fmt.Fprintf(cmd.OutOrStdout(), "Entry screen: %s\n", app.Store.EntryScreen())

		if state.Principal != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in: %s (%s)\n", state.Principal.Email, state.Principal.ID)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in: no")
		}
		if state.Subscription != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription: %s (%s)\n", state.Subscription.Plan, state.Subscription.Status)
		}
		if state.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Last error: %s\n", state.Err.Message)
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&email, "email", "", "account email")
	registerCmd.Flags().StringVar(&password, "password", "", "account password")
	registerCmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	registerCmd.Flags().BoolVar(&acceptTerms, "accept-terms", false, "accept the terms of service")

	loginCmd.Flags().StringVar(&email, "email", "", "account email")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")

	resetPasswordCmd.Flags().StringVar(&email, "email", "", "account email")

	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(loginCmd)
	Cmd.AddCommand(logoutCmd)
	Cmd.AddCommand(resetPasswordCmd)
	Cmd.AddCommand(statusCmd)
}
