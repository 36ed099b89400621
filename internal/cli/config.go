package cli

import (
	"strings"

	"checklist/internal/format"
	"checklist/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := strings.TrimSpace(app.ConfigPath)
			if p == "" {
				var err error
				if p, err = store.ConfigPath(); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"path": p}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"backend":    app.Backend,
				"dir":        dir,
				"dsnSet":     strings.TrimSpace(app.DSN) != "",
				"idAttempts": app.IDAttempts,
				"logLevel":   app.LogLevel,
				"webAddr":    app.cfg.Web.Addr,
			}})
		},
	})
	return cmd
}
