package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/config"
	"github.com/salmonumbrella/tabulate/internal/iocontext"
	"github.com/salmonumbrella/tabulate/internal/output"
	"github.com/salmonumbrella/tabulate/internal/ui"
)

// EnvOutput overrides the configured output format.
const EnvOutput = "TBL_OUTPUT"

type globalFlagInput struct {
	outputFlag  string
	colorFlag   string
	errorFormat string
	quietFlag   bool
	compactJSON bool
}

type globalOptions struct {
	format      output.Format
	color       ui.ColorMode
	quiet       bool
	compactJSON bool
	errorFormat string

	outputFlagSet bool
}

// parseGlobalOptions resolves the persistent flags against the environment
// and config. Precedence is flag, then environment, then config.
func parseGlobalOptions(cmd *cobra.Command, cfg *config.Config, stdout io.Writer, flags globalFlagInput) (globalOptions, error) {
	opts := globalOptions{
		quiet:         flags.quietFlag,
		compactJSON:   flags.compactJSON,
		errorFormat:   flags.errorFormat,
		outputFlagSet: commandFlagChanged(cmd, "output", "out"),
	}

	formatStr := flags.outputFlag
	if !opts.outputFlagSet {
		if env := strings.TrimSpace(os.Getenv(EnvOutput)); env != "" {
			formatStr = env
		} else if cfg.Output != "" {
			formatStr = cfg.Output
		}
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return globalOptions{}, err
	}
	opts.format = format

	colorStr := flags.colorFlag
	if !commandFlagChanged(cmd, "color") {
		colorStr = cfg.Color
	}
	color, err := ui.ParseColorMode(colorStr)
	if err != nil {
		return globalOptions{}, clierrors.InvalidChoiceError("color mode", colorStr, config.ColorModes)
	}
	opts.color = color

	// Notices would interleave with machine-readable output on a pipe.
	if !commandFlagChanged(cmd, "quiet") && !isTerminal(stdout) && opts.format.Structured() {
		opts.quiet = true
	}

	return opts, nil
}

func validateGlobalOptions(opts *globalOptions) error {
	return validateErrorFormat(opts.errorFormat)
}

func buildRootContext(ctx context.Context, app *App, cfg *config.Config, opts globalOptions) context.Context {
	ctx = iocontext.WithStreams(ctx, iocontext.Streams{In: app.Stdin, Out: app.Stdout, Err: app.Stderr})
	ctx = output.WithFormat(ctx, opts.format)
	ctx = output.WithCompactJSON(ctx, opts.compactJSON)
	ctx = WithConfig(ctx, cfg)
	ctx = WithErrorFormat(ctx, opts.errorFormat)

	u := ui.NewWithWriter(stderrFromContext(ctx), opts.color)
	u.SetQuiet(opts.quiet)
	return ui.WithUI(ctx, u)
}
