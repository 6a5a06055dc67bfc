package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/auth"
	"github.com/idilsaglam/todolist/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list to a browser until interrupted",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				app.Cfg.Web.Addr = addr
			}

			var token string
			ti, err := auth.GetToken()
			switch {
			case err == nil:
				token = ti.Token
			case errors.Is(err, auth.ErrNoToken):
				app.Log.Warn("no API token configured; /api/ is open", "hint", "todo auth set <token>")
			default:
				return err
			}

			ctl, err := app.newController()
			if err != nil {
				return err
			}
			srv, err := web.NewServer(ctl, web.ServerConfig{Addr: app.Cfg.Web.Addr, Token: token}, app.Log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	addSeedFlags(cmd, app)
	return cmd
}
