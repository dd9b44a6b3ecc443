package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tabulate/internal/config"
	"github.com/salmonumbrella/tabulate/internal/input"
	"github.com/salmonumbrella/tabulate/internal/logging"
	"github.com/salmonumbrella/tabulate/internal/table"
	"github.com/salmonumbrella/tabulate/internal/ui"
	"github.com/salmonumbrella/tabulate/internal/validate"
)

// renderFlags are the root command's local flags.
type renderFlags struct {
	input     string
	headerRow bool
	headers   []string
	infer     bool
	minWidth  int
	separator string
	missing   string
	query     string
	jsonPath  string
}

// renderOptions is renderFlags resolved against config.
type renderOptions struct {
	path    string
	input   input.Options
	headers []string
	table   []table.Option
}

func resolveRenderOptions(cmd *cobra.Command, cfg *config.Config, flags *renderFlags, path string) (renderOptions, error) {
	flagFormat, err := input.ParseFormat(flags.input)
	if err != nil {
		return renderOptions{}, err
	}
	cfgFormat, err := input.ParseFormat(cfg.Input)
	if err != nil {
		return renderOptions{}, fmt.Errorf("invalid input format in config: %w", err)
	}

	if err := input.ValidateSelectors(flags.query, flags.jsonPath); err != nil {
		return renderOptions{}, err
	}

	opts := renderOptions{
		path: path,
		input: input.Options{
			Format:    input.Resolve(flagFormat, path, cfgFormat),
			HeaderRow: flags.headerRow,
			Infer:     flags.infer,
			Query:     flags.query,
			JSONPath:  flags.jsonPath,
		},
		headers: flags.headers,
	}

	switch {
	case commandFlagChanged(cmd, "min-width"):
		if err := validate.MinWidth("min-width", flags.minWidth); err != nil {
			return renderOptions{}, err
		}
		opts.table = append(opts.table, table.WithMinWidth(flags.minWidth))
	case cfg.MinWidth != nil:
		opts.table = append(opts.table, table.WithMinWidth(*cfg.MinWidth))
	}

	switch {
	case commandFlagChanged(cmd, "separator", "sep"):
		if err := validate.SingleLine("separator", flags.separator); err != nil {
			return renderOptions{}, err
		}
		opts.table = append(opts.table, table.WithColumnSeparator(flags.separator))
	case cfg.Separator != nil:
		opts.table = append(opts.table, table.WithColumnSeparator(*cfg.Separator))
	}

	missing := cfg.Missing
	if commandFlagChanged(cmd, "missing") {
		if err := validate.SingleLine("missing", flags.missing); err != nil {
			return renderOptions{}, err
		}
		missing = flags.missing
	}
	if missing != "" {
		opts.table = append(opts.table, table.WithMissing(missing))
	}

	return opts, nil
}

// runRender reads the input, renders it and writes it in the output format.
func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	log := logging.For("cmd")

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	opts, err := resolveRenderOptions(cmd, ConfigFromContext(ctx), flags, path)
	if err != nil {
		return err
	}
	log.Debug("reading input", "path", path, "format", string(opts.input.Format))

	doc, err := input.Read(ctx, opts.path, opts.input)
	if err != nil {
		return err
	}

	headers := doc.Headers
	if len(opts.headers) > 0 {
		if len(doc.Headers) > 0 {
			ui.FromContext(ctx).Warning("--headers replaces the headers read from the input")
		}
		headers = opts.headers
	}
	tableOpts := opts.table
	if len(headers) > 0 {
		tableOpts = append(tableOpts, table.WithHeaders(headers...))
	}
	if len(doc.Table) == 0 && len(headers) == 0 {
		ui.FromContext(ctx).Info("Input has no rows")
	}

	return printerForContext(ctx).Print(ctx, table.New(tableOpts...), doc.Table)
}
