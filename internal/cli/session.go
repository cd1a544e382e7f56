package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/workspace"
)

func (a *app) loginCmd() *cobra.Command {
	var signUp bool
	cmd := &cobra.Command{
		Use:   "login <email> [name]",
		Short: "Sign in; the name defaults to one derived from the email",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withWorkspace(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			name := strings.Join(args[1:], " ")
			login := ws.Session.Login
			if signUp {
				login = ws.Session.SignUp
			}
			u, err := login(args[0], name)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", u.Name, u.Email)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&signUp, "sign-up", false, "Create an account; requires a name")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			if err := ws.Session.Logout(); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Signed out\n")
			return nil
		}),
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			u, err := ws.Session.Require()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "%s <%s>\n", u.Name, u.Email)
			p := u.Settings()
			printf(out, "theme: %s, time format: %s\n", p.Theme, p.TimeFormat)
			return nil
		}),
	}
}
