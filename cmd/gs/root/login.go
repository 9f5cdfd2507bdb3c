package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Start a local session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("email is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.SignIn(ctx, args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Signed in as "+u.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear local user data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Signed out."))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("anonymous (not signed in)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("User", u.Email))
			return nil
		},
	}
}
