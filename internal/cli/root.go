package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"checklist/internal/checklist"
	"checklist/internal/format"
	"checklist/internal/logging"
	"checklist/internal/store"
	"checklist/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	DSN        string
	ConfigPath string
	Format     string
	PrettyJSON bool
	LogLevel   string
	IDAttempts int

	cfg    store.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "checklist",
		Short:        "A persisted checklist (CLI + TUI + web)",
		SilenceUsage: true,
		// writeErr already printed it.
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  checklist

  # Scriptable commands
  checklist add Buy milk
  checklist list
  checklist toggle <id>

  # Serve the list to a browser
  checklist web --addr 127.0.0.1:3336
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.loadConfig(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHECKLIST_DIR", ""), "Data directory (default: nearest .checklist/ or ~/.checklist/data)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("CHECKLIST_BACKEND", ""), "Storage backend (sqlite|file|postgres)")
	cmd.PersistentFlags().StringVar(&app.DSN, "dsn", envOr("CHECKLIST_DSN", ""), "Postgres connection string (postgres backend)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: ~/.checklist/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHECKLIST_FORMAT", "json"), "Output format (json|md)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("CHECKLIST_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().IntVar(&app.IDAttempts, "id-attempts", envIntOr("CHECKLIST_ID_ATTEMPTS", 0), "Id candidates to try before an add is rejected")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newSetStatusCmd(app, "done", true))
	cmd.AddCommand(newSetStatusCmd(app, "undo", false))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newPrintCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// loadConfig fills every setting the flags and environment left empty from
// the config file, then from defaults.
func (app *App) loadConfig(cmd *cobra.Command) error {
	cfg, err := store.LoadConfig(app.ConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	app.cfg = cfg

	if strings.TrimSpace(app.Backend) == "" {
		app.Backend = cfg.Backend
	}
	if strings.TrimSpace(app.DSN) == "" {
		app.DSN = cfg.DSN
	}
	if strings.TrimSpace(app.Dir) == "" {
		app.Dir = cfg.Dir
	}
	if app.IDAttempts <= 0 {
		app.IDAttempts = cfg.IDAttempts
	}
	if strings.TrimSpace(app.LogLevel) == "" {
		app.LogLevel = cfg.LogLevel
	}
	app.logger = logging.New(cmd.ErrOrStderr(), app.LogLevel)
	return nil
}

// resolveDir returns the data directory, or "" for backends that do not use one.
func resolveDir(app *App) (string, error) {
	switch strings.ToLower(strings.TrimSpace(app.Backend)) {
	case store.BackendPostgres, "postgresql":
		return "", nil
	}
	if d := strings.TrimSpace(app.Dir); d != "" {
		return d, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// openSession restores the list from the configured backend. closeFn releases
// the backend.
func openSession(cmd *cobra.Command, app *App) (s *checklist.Session, closeFn func(), err error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, nil, err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	blobs, err := store.OpenBlobs(store.BlobsConfig{Backend: app.Backend, Dir: dir, DSN: app.DSN})
	if err != nil {
		return nil, nil, err
	}
	gw := store.NewGateway(blobs, app.logger)
	s = checklist.Open(cmd.Context(), checklist.Options{
		Gateway: gw,
		IDs:     store.NewIDGenerator(app.IDAttempts),
		Logger:  app.logger,
	})
	app.logger.Debug("session open", "backend", app.Backend, "dir", dir, "items", len(s.Items()))
	return s, func() {
		if err := gw.Close(); err != nil {
			app.logger.Warn("close store", "err", err)
		}
	}, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, closeFn, err := openSession(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeFn()
	if err := tui.Run(cmd.Context(), s, tui.Options{Dir: app.Dir, Logger: app.logger}); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive TUI (same as running with no command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envIntOr(k string, d int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return n
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
