package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(e *env) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "Logged in as %s <%s>\n", res.User.Name, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !e.session.Authenticated() {
				fmt.Fprintln(e.out, "Not logged in")
				return nil
			}
			if err := e.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := e.session.User()
			if u == nil {
				fmt.Fprintln(e.out, "Not logged in")
				return nil
			}
			fmt.Fprintf(e.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
}
