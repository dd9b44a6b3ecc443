package cmd

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/config"
	"github.com/salmonumbrella/tabulate/internal/logging"
)

//go:embed help.txt
var rootHelpText string

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode   bool
		logJSON     bool
		outputFlag  string
		colorFlag   string
		errorFormat string
		quietFlag   bool
		compactJSON bool
	)
	render := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:   "tbl [file]",
		Short: "Render rows as a plain-text table",
		Long: `Read rows from a file or stdin and print them as a plain-text table
framed by dashed border lines.

Input may be CSV, TSV, JSON, NDJSON or YAML. Cells can be empty, booleans,
integers or text.`,
		// Errors are printed centrally by App.Execute, including flag errors
		// raised before the pre-run hook.
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return clierrors.NewUserError(
					fmt.Sprintf("expected at most one input file, got %d", len(args)),
					"Pass a single file, or '-' to read stdin",
				)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Options{Debug: debugMode, JSON: logJSON, Writer: app.Stderr})

			// Load config file (skip for config commands so a broken file can be fixed)
			var cfg *config.Config
			if !isConfigCommand(cmd) {
				loadedCfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loadedCfg
			} else {
				cfg = &config.Config{}
			}

			opts, err := parseGlobalOptions(cmd, cfg, app.Stdout, globalFlagInput{
				outputFlag:  outputFlag,
				colorFlag:   colorFlag,
				errorFormat: errorFormat,
				quietFlag:   quietFlag,
				compactJSON: compactJSON,
			})
			if err != nil {
				return err
			}
			if err := validateGlobalOptions(&opts); err != nil {
				return err
			}

			// Inject parsed global options into context so subcommands can access them.
			ctx := buildRootContext(cmd.Context(), app, cfg, opts)
			cmd.SetContext(ctx)
			app.runCtx = ctx

			slog.Debug("command starting", "command", cmd.CommandPath(), "output", string(opts.format))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, render)
		},
	}

	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	// Set version info
	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tbl %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.WrapUserError(err, "invalid flag", "Run 'tbl --help' for usage")
	})

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text|json|ndjson|jsonl|yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color for notices on stderr: auto|always|never")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")

	// Input and layout flags
	rootCmd.Flags().StringVarP(&render.input, "input", "i", "", "Input format: csv|tsv|json|ndjson|yaml (default: from extension, else csv)")
	rootCmd.Flags().BoolVar(&render.headerRow, "header-row", false, "Use the first row as the header line")
	rootCmd.Flags().StringSliceVar(&render.headers, "headers", nil, "Header line as comma-separated names")
	rootCmd.Flags().BoolVar(&render.infer, "infer", false, "Read true/false and integers in CSV/TSV as booleans and integers")
	rootCmd.Flags().IntVar(&render.minWidth, "min-width", 5, "Minimum column width")
	rootCmd.Flags().StringVar(&render.separator, "separator", " ", "Text between columns")
	rootCmd.Flags().StringVar(&render.missing, "missing", "", "Text shown for empty cells")
	rootCmd.Flags().StringVarP(&render.query, "query", "q", "", "JQ expression selecting the rows of structured input")
	rootCmd.Flags().StringVar(&render.jsonPath, "jsonpath", "", "JSONPath expression selecting the rows of structured input")

	// Flag aliases for ergonomics
	flagAlias(rootCmd.PersistentFlags(), "output", "out")
	flagAlias(rootCmd.PersistentFlags(), "compact-json", "cj")
	flagAlias(rootCmd.Flags(), "separator", "sep")
	flagAlias(rootCmd.Flags(), "query", "jq")

	// Register subcommands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newMCPCmd(app))

	installRootHelp(rootCmd)

	return rootCmd
}

func isConfigCommand(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Name() == "config" {
			return true
		}
	}
	return false
}

func installRootHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}

		_, _ = fmt.Fprint(cmd.OutOrStdout(), rootHelpText)
	})
}
