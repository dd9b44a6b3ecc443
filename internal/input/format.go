// Package input reads tabular documents (CSV, TSV, JSON, NDJSON, YAML) and
// turns them into a table.Table.
package input

import (
	"path/filepath"
	"strings"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

// Format is an input document format.
type Format string

const (
	// FormatAuto picks a format from the file extension, falling back to CSV.
	FormatAuto Format = ""
	// FormatCSV is comma-separated values.
	FormatCSV Format = "csv"
	// FormatTSV is tab-separated values.
	FormatTSV Format = "tsv"
	// FormatJSON is a single JSON array.
	FormatJSON Format = "json"
	// FormatNDJSON is one JSON value per line.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is a single YAML sequence.
	FormatYAML Format = "yaml"
)

var formatNames = []string{"csv", "tsv", "json", "ndjson", "jsonl", "yaml", "yml"}

// ParseFormat converts a string to a Format. Empty and "auto" mean FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "csv":
		return FormatCSV, nil
	case "tsv", "tab":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", clierrors.InvalidChoiceError("--input format", s, formatNames)
	}
}

// DetectFormat guesses a format from a file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".tsv", ".tab":
		return FormatTSV, true
	case ".json":
		return FormatJSON, true
	case ".ndjson", ".jsonl":
		return FormatNDJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return FormatAuto, false
	}
}

// Resolve returns f, or the format detected from path, or fallback, or CSV.
func Resolve(f Format, path string, fallback Format) Format {
	if f != FormatAuto {
		return f
	}
	if detected, ok := DetectFormat(path); ok {
		return detected
	}
	if fallback != FormatAuto {
		return fallback
	}
	return FormatCSV
}

// Structured reports whether f decodes into nested values (and so supports
// --query and --jsonpath).
func (f Format) Structured() bool {
	switch f {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}
