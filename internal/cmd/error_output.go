package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/output"
)

// ErrorFormats lists the accepted --error-format values.
var ErrorFormats = []string{"auto", "text", "json", "yaml"}

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return clierrors.InvalidChoiceError("--error-format", format, ErrorFormats)
	}
}

// effectiveErrorFormat resolves "auto" against the output format so that
// structured output gets structured errors.
func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	w := stderrFromContext(ctx)

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(w, err)
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(w, "Hint: %s\n", suggestion)
	}
}

func buildErrorEnvelope(err error) map[string]any {
	errMap := map[string]any{
		"message": err.Error(),
	}

	category := "system"
	switch ExitCode(err) {
	case ExitUser:
		category = "user"
	case ExitCanceled:
		category = "canceled"
	}
	errMap["category"] = category

	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		errMap["suggestion"] = suggestion
	}

	var validationErr *clierrors.ValidationError
	if errors.As(err, &validationErr) {
		errMap["type"] = "validation"
		errMap["field"] = validationErr.Field
	}

	var unsupported *clierrors.UnsupportedValueError
	if errors.As(err, &unsupported) {
		errMap["type"] = "unsupported_value"
		errMap["value_type"] = unsupported.Type
		if unsupported.Row >= 0 && unsupported.Column >= 0 {
			errMap["row"] = unsupported.Row
			errMap["column"] = unsupported.Column
		}
	}

	return map[string]any{"error": errMap}
}
