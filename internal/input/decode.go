package input

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/iocontext"
	"github.com/salmonumbrella/tabulate/internal/logging"
	"github.com/salmonumbrella/tabulate/internal/table"
)

// Options controls decoding.
type Options struct {
	Format Format
	// HeaderRow uses the first row as headers.
	HeaderRow bool
	// Infer turns CSV/TSV literals true/false and integers into Bool and Int cells.
	Infer bool
	// Query is a jq program applied to structured documents.
	Query string
	// JSONPath is a JSONPath expression applied to structured documents.
	JSONPath string
}

// Document is a decoded table with optional headers.
type Document struct {
	Headers []string
	Table   table.Table
}

// ReadSource reads the file at path, or stdin from ctx when path is "" or "-".
func ReadSource(ctx context.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(iocontext.StdinOrDefault(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, clierrors.WrapUserError(err, fmt.Sprintf("failed to read file %q", path), "Check that the file exists and is readable")
	}
	return data, nil
}

// Read reads path and decodes it. opts.Format must already be resolved.
func Read(ctx context.Context, path string, opts Options) (*Document, error) {
	data, err := ReadSource(ctx, path)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}

// Decode turns raw bytes into a Document.
func Decode(data []byte, opts Options) (*Document, error) {
	log := logging.For("input")
	if (opts.Query != "" || opts.JSONPath != "") && !opts.Format.Structured() {
		return nil, clierrors.NewUserError(
			fmt.Sprintf("--query and --jsonpath need structured input, got %s", opts.Format),
			"Use --input json, ndjson or yaml",
		)
	}

	var (
		doc *Document
		err error
	)
	switch opts.Format {
	case FormatCSV:
		doc, err = decodeDelimited(data, ',', opts)
	case FormatTSV:
		doc, err = decodeDelimited(data, '\t', opts)
	case FormatJSON, FormatNDJSON, FormatYAML:
		var v any
		v, err = decodeStructured(data, opts.Format)
		if err != nil {
			return nil, clierrors.WrapUserError(err, fmt.Sprintf("failed to parse %s input", opts.Format), "Check that the input is valid "+strings.ToUpper(string(opts.Format)))
		}
		v, err = selectRows(v, opts)
		if err != nil {
			return nil, err
		}
		doc, err = documentFromValue(v, opts.HeaderRow)
	default:
		return nil, fmt.Errorf("unsupported input format: %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("decoded input", "format", string(opts.Format), "rows", len(doc.Table), "columns", doc.Table.Columns(), "headers", len(doc.Headers))
	return doc, nil
}

func decodeDelimited(data []byte, comma rune, opts Options) (*Document, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	if comma == '\t' {
		r.LazyQuotes = true
	}

	records, err := r.ReadAll()
	if err != nil {
		name := "CSV"
		if comma == '\t' {
			name = "TSV"
		}
		return nil, clierrors.WrapUserError(err, "failed to parse "+name+" input", "Check quoting and delimiters, or pass --input")
	}

	doc := &Document{}
	if opts.HeaderRow && len(records) > 0 {
		doc.Headers = records[0]
		records = records[1:]
	}

	doc.Table = make(table.Table, len(records))
	for i, rec := range records {
		row := make(table.Row, len(rec))
		for j, field := range rec {
			row[j] = fieldCell(field, opts.Infer)
		}
		doc.Table[i] = row
	}
	return doc, nil
}

// fieldCell maps a delimited field to a cell. Empty fields are absent.
func fieldCell(field string, infer bool) table.Cell {
	if field == "" {
		return table.Absent()
	}
	if !infer {
		return table.Text(field)
	}
	switch field {
	case "true", "True", "TRUE":
		return table.Bool(true)
	case "false", "False", "FALSE":
		return table.Bool(false)
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return table.Int(i)
	}
	return table.Text(field)
}

func decodeStructured(data []byte, f Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []any{}, nil
	}

	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, errors.New("unexpected data after the first JSON value (use --input ndjson for one value per line)")
		}
		return normalize(v), nil
	case FormatNDJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var rows []any
		for {
			var v any
			err := dec.Decode(&v)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", len(rows)+1, err)
			}
			rows = append(rows, normalize(v))
		}
		return rows, nil
	default:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		keepTimestampsLiteral(&node)
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return normalize(v), nil
	}
}

// keepTimestampsLiteral retags plain timestamp scalars as strings so a date
// is rendered as written instead of decoding to time.Time.
func keepTimestampsLiteral(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" && n.Style&yaml.TaggedStyle == 0 {
		n.Tag = "!!str"
	}
	for _, c := range n.Content {
		keepTimestampsLiteral(c)
	}
}

// documentFromValue accepts an array of rows (arrays or scalars) or an array
// of objects. Object keys become sorted headers.
func documentFromValue(v any, headerRow bool) (*Document, error) {
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return &Document{}, nil
		}
		return nil, clierrors.NewUserError(
			fmt.Sprintf("expected an array of rows, got %s", describe(v)),
			"Provide an array of arrays or an array of objects, or select one with --query",
		)
	}

	if len(items) > 0 && allObjects(items) {
		if headerRow {
			return nil, clierrors.NewUserError(
				"a header row cannot be taken from an array of objects",
				"Object keys already become the headers; drop the header row option",
			)
		}
		return documentFromObjects(items)
	}

	doc := &Document{}
	rows := make([][]any, 0, len(items))
	for i, item := range items {
		switch x := item.(type) {
		case []any:
			rows = append(rows, x)
		case map[string]any:
			return nil, clierrors.NewUserError(
				fmt.Sprintf("row %d is an object but other rows are not", i),
				"Use either arrays or objects for every row",
			)
		default:
			rows = append(rows, []any{x})
		}
	}

	if headerRow && len(rows) > 0 {
		doc.Headers = make([]string, len(rows[0]))
		for j, h := range rows[0] {
			c, err := table.FromValue(h)
			if err != nil {
				var uv *clierrors.UnsupportedValueError
				if errors.As(err, &uv) {
					return nil, uv.At(0, j)
				}
				return nil, err
			}
			doc.Headers[j] = c.String()
		}
		rows = rows[1:]
	}

	t, err := table.FromRows(rows)
	if err != nil {
		var uv *clierrors.UnsupportedValueError
		if headerRow && errors.As(err, &uv) {
			return nil, uv.At(uv.Row+1, uv.Column)
		}
		return nil, err
	}
	doc.Table = t
	return doc, nil
}

func documentFromObjects(items []any) (*Document, error) {
	seen := make(map[string]bool)
	var keys []string
	for _, item := range items {
		for k := range item.(map[string]any) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	rows := make([][]any, len(items))
	for i, item := range items {
		obj := item.(map[string]any)
		row := make([]any, len(keys))
		for j, k := range keys {
			row[j] = obj[k]
		}
		rows[i] = row
	}

	t, err := table.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return &Document{Headers: keys, Table: t}, nil
}

func allObjects(items []any) bool {
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func describe(v any) string {
	switch v.(type) {
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
