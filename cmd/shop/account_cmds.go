package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errAuthFailed = errors.New("authentication failed")

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.session.Login(cmd.Context(), email, password) {
				return errAuthFailed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s\n", a.session.User().Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.session.Register(cmd.Context(), name, email, password) {
				return errAuthFailed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", a.session.User().Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if !a.session.Authenticated() {
				fmt.Fprintln(out, "Not signed in")
				return
			}
			u := a.session.User()
			fmt.Fprintf(out, "%s <%s> id=%s\n", u.Name, u.Email, u.ID)
			if showToken {
				fmt.Fprintln(out, a.session.Token())
			}
		},
	}
	cmd.Flags().BoolVar(&showToken, "token", false, "also print the session token")
	return cmd
}
