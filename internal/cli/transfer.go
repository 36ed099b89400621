package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"checklist/internal/format"
	"checklist/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the persisted document (JSON array) to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, err := store.EncodeItems(s.Items())
			if err != nil {
				return writeErr(cmd, err)
			}
			b = append(b, '\n')
			if strings.TrimSpace(out) == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
			} else {
				err = os.WriteFile(out, b, 0o644)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the list with an exported document",
		Long: strings.TrimSpace(`
Replace the whole list with a document written by ` + "`checklist export`" + `.

Unlike startup, import rejects a malformed document instead of starting empty.
Records repeating an earlier id are dropped.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := store.DecodeItems(data)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("import: %w", err))
			}

			s, closeFn, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			kept := s.Replace(cmd.Context(), items)
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"imported": len(kept),
					"dropped":  len(items) - len(kept),
				},
			})
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("missing input path")
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
