package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabulate/internal/iocontext"
	"github.com/salmonumbrella/tabulate/internal/mcp"
	"github.com/salmonumbrella/tabulate/internal/ui"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tabulate tool over MCP (stdio)",
		Long: `Run a Model Context Protocol server on stdin/stdout.

The server exposes one tool, "tabulate", which takes rows as JSON (or CSV,
TSV, NDJSON, YAML) and returns the rendered plain-text table.

Example client configuration:
  {"command": "tbl", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ui.FromContext(ctx).Info("Serving MCP on stdio")

			srv := mcp.NewServer(app.Version)
			err := srv.Serve(ctx, iocontext.StdinOrDefault(ctx), stdoutFromContext(ctx))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
