package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/tabulate/internal/config"
	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/input"
	"github.com/salmonumbrella/tabulate/internal/output"
	"github.com/salmonumbrella/tabulate/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage CLI configuration",
		Long:    `Manage tbl configuration file at ~/.config/tabulate/config.yaml (or $TBL_CONFIG)`,
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// If config is empty, show a helpful message
			if cfg.IsEmpty() {
				path, _ := config.DefaultConfigPath()
				_, _ = fmt.Fprintf(out, "No configuration set in %s\n", path)
				_, _ = fmt.Fprintln(out, "\nTo create a config file, use:")
				_, _ = fmt.Fprintln(out, "  tbl config set output json")
				return nil
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to format config: %w", err)
			}
			_, _ = fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in ~/.config/tabulate/config.yaml

Supported keys:
  output     - Default output format (text, json, ndjson/jsonl, yaml)
  input      - Input format when none is given or detected (csv, tsv, json, ndjson, yaml)
  color      - Default color mode (auto, always, never)
  min_width  - Minimum column width (non-negative integer)
  separator  - Text between columns
  missing    - Text shown for empty cells

Examples:
  tbl config set output json
  tbl config set min_width 3
  tbl config set separator " | "`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			key, value := args[0], args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, err = normalizeConfigValue(key, value)
			if err != nil {
				return err
			}
			if err := cfg.Set(key, value); err != nil {
				return clierrors.WrapUserError(err, "cannot set "+key, "Supported keys: "+strings.Join(config.Keys, ", "))
			}

			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			path, _ := config.DefaultConfigPath()
			_, _ = fmt.Fprintf(out, "Set %s = %q in %s\n", key, value, path)
			return nil
		},
	}
}

// normalizeConfigValue validates format keys against the formats the CLI
// accepts and stores their canonical names.
func normalizeConfigValue(key, value string) (string, error) {
	switch key {
	case "output":
		format, err := output.ParseFormat(value)
		if err != nil {
			return "", err
		}
		return string(format), nil
	case "input":
		format, err := input.ParseFormat(value)
		if err != nil {
			return "", err
		}
		return string(format), nil
	default:
		return value, nil
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Unset(args[0]); err != nil {
				return clierrors.WrapUserError(err, "cannot unset "+args[0], "Supported keys: "+strings.Join(config.Keys, ", "))
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			ui.FromContext(cmd.Context()).Success("Unset %s", args[0])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Long:  `Display the path to the configuration file`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := stdoutFromContext(cmd.Context())
			path, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("failed to determine config path: %w", err)
			}

			_, _ = fmt.Fprintln(out, path)

			// Show if file exists
			if _, err := os.Stat(path); err == nil {
				_, _ = fmt.Fprintln(out, "(file exists)")
			} else if os.IsNotExist(err) {
				_, _ = fmt.Fprintln(out, "(file does not exist)")
			}

			return nil
		},
	}
}
