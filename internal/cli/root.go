package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store/memstore"
	"github.com/idilsaglam/todolist/internal/store/seedfile"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// App carries flag values and the loaded config between commands.
type App struct {
	ConfigPath string
	Theme      string
	Color      string
	LogLevel   string
	LogFormat  string
	LogFile    string

	// Session seeding, shared by the root and serve commands.
	Add  []string
	Seed string

	Cfg config.Config
	Log *log.Logger

	closeLog func() error
}

// usageError marks errors that should exit with code 2.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A session-scoped to-do list for the terminal and the browser",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive TUI with two items
  todo --add "Buy milk" --add "Call mom"

  # Serve the list to a browser
  todo serve --addr 127.0.0.1:8080

  # Replay events without a terminal
  printf 'add Buy milk\nls\n' | todo script
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so its logs only go to a file.
			return app.setup(cmd, cmd.Name() == "todo")
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.closeLog != nil {
				return app.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := app.newController()
			if err != nil {
				return err
			}
			return tui.Run(ctl, tui.Options{CharLimit: app.Cfg.Input.CharLimit, Logger: app.Log})
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "path to a TOML config file")
	pf.StringVar(&app.Theme, "theme", "", "color theme: classic|neon|mono")
	pf.StringVar(&app.Color, "color", "", "color output: auto|always|never")
	pf.StringVar(&app.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&app.LogFormat, "log-format", "", "log format: text|json|logfmt")
	pf.StringVar(&app.LogFile, "log-file", "", "append logs to this file")

	addSeedFlags(cmd, app)

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newScriptCmd(app))
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newAuthCmd())
	return cmd
}

func addSeedFlags(cmd *cobra.Command, app *App) {
	cmd.Flags().StringArrayVar(&app.Add, "add", nil, "add an item to the new session (repeatable)")
	cmd.Flags().StringVar(&app.Seed, "seed", "", "YAML file with items to start the session with")
}

func (app *App) setup(cmd *cobra.Command, quiet bool) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = app.Theme
	}
	if flags.Changed("color") {
		cfg.Color = app.Color
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = app.LogFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	app.Cfg = cfg

	ui.SetTheme(cfg.Theme)
	ui.SetColorMode(cfg.Color)

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Quiet:  quiet,
	})
	if err != nil {
		return err
	}
	app.Log = logger
	app.closeLog = closeLog
	return nil
}

// newController builds the session list from --seed then --add.
func (app *App) newController() (*todolist.Controller, error) {
	st := memstore.New()
	if app.Seed != "" {
		items, err := seedfile.Load(app.Seed)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			st.Add(it)
		}
	}
	ctl := todolist.New(todolist.WithStore(st), todolist.WithLogger(app.Log))
	for _, title := range app.Add {
		ctl.Submit(title)
	}
	app.Log.Debug("session ready", "items", ctl.Len())
	return ctl, nil
}

// Execute runs the root command and returns a process exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Hint: run `todo --help`"))
		return 2
	}
	return 1
}
