package input

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/itchyny/gojq"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

// ValidateSelectors rejects combinations the decoder cannot honor.
func ValidateSelectors(query, path string) error {
	if strings.TrimSpace(query) != "" && strings.TrimSpace(path) != "" {
		return clierrors.NewUserError(
			"only one of --query or --jsonpath may be used",
			"Pick either a jq program or a JSONPath expression",
		)
	}
	if strings.TrimSpace(query) != "" {
		if _, err := compileQuery(query); err != nil {
			return err
		}
	}
	return nil
}

// selectRows applies --query or --jsonpath to a decoded document.
func selectRows(v any, opts Options) (any, error) {
	if err := ValidateSelectors(opts.Query, opts.JSONPath); err != nil {
		return nil, err
	}
	switch {
	case strings.TrimSpace(opts.Query) != "":
		return runQuery(opts.Query, v)
	case strings.TrimSpace(opts.JSONPath) != "":
		return runJSONPath(opts.JSONPath, v)
	default:
		return v, nil
	}
}

func compileQuery(query string) (*gojq.Code, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, formatInvalidQueryErr(err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, formatInvalidQueryErr(err)
	}
	return code, nil
}

// runQuery runs a jq program. A single result that is an array of arrays or
// objects is the row list; any other result set is one row per result.
func runQuery(query string, v any) (any, error) {
	code, err := compileQuery(query)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(v)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if queryErr, isErr := out.(error); isErr {
			return nil, clierrors.WrapUserError(queryErr, "query error", "Check the --query program against the input shape")
		}
		results = append(results, normalize(out))
	}

	if len(results) == 1 {
		if rows, ok := results[0].([]any); ok && allRows(rows) {
			return rows, nil
		}
	}
	if results == nil {
		results = []any{}
	}
	return results, nil
}

// allRows reports whether every item is an array or an object.
func allRows(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case []any, map[string]any:
		default:
			return false
		}
	}
	return true
}

func runJSONPath(raw string, v any) (any, error) {
	path := normalizeJSONPath(raw)
	if path == "" {
		return nil, clierrors.NewUserError("invalid --jsonpath value", "Example: --jsonpath '$.items[*]'")
	}
	out, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --jsonpath value", "Example: --jsonpath '$.items[*]'")
	}
	return normalize(out), nil
}

func normalizeJSONPath(path string) string {
	trimmed := strings.TrimSpace(path)
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "$"):
		return trimmed
	case strings.HasPrefix(trimmed, "."), strings.HasPrefix(trimmed, "["):
		return "$" + trimmed
	default:
		return "$." + trimmed
	}
}

func formatInvalidQueryErr(err error) error {
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "unexpected eof") {
		return clierrors.WrapUserError(err, "invalid --query", "The query looks incomplete; quote it fully")
	}
	return clierrors.WrapUserError(err, "invalid --query", "")
}

// normalize rewrites decoded values into the shapes gojq and jsonpath
// expect: map[string]any, []any, int for integral numbers.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return intOr(i, x)
		}
		if f, err := x.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return x
	case float64:
		return normalizeFloat(x)
	case int64:
		return intOr(x, x)
	case uint64:
		if x <= math.MaxInt64 {
			return intOr(int64(x), x)
		}
		return x
	case *big.Int:
		if x.IsInt64() {
			return intOr(x.Int64(), x)
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// normalizeFloat keeps fractional values as float64 (and so unsupported as
// cells); integral values become int.
func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}

func intOr(i int64, fallback any) any {
	if int64(int(i)) == i {
		return int(i)
	}
	return fallback
}
