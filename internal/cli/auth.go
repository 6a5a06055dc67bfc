package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/auth"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token required by the JSON API",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Save a token to ~/.todo/credentials.json",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.SetToken(args[0]); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "token saved")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved token",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ti, err := auth.GetToken()
			if err == nil && ti.Source == auth.SourceEnv {
				ui.OK(cmd.OutOrStdout(), "token is provided by "+auth.EnvToken+" (nothing to delete)")
				return nil
			}
			if err := auth.DeleteToken(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "token cleared")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the API token comes from",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ti, err := auth.GetToken()
			if errors.Is(err, auth.ErrNoToken) {
				fmt.Fprintln(out, ui.Current().Muted.Render("no token: the JSON API is open"))
				fmt.Fprintln(out, "Run: todo auth set <token>")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "source: %s\n", ti.Source)
			if !ti.CreatedAt.IsZero() {
				fmt.Fprintf(out, "saved: %s\n", ti.CreatedAt.UTC().Format(time.RFC3339))
			}
			fmt.Fprintf(out, "env override: %s\n", auth.EnvToken)
			return nil
		},
	})
	return cmd
}
