package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/table"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the plain-text table (default).
	FormatText Format = "text"
	// FormatJSON is a pretty-printed JSON envelope.
	FormatJSON Format = "json"
	// FormatNDJSON is one JSON array per row.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is a YAML envelope.
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "ndjson", "jsonl", "yaml"}

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
// Returns a UserError if the format is invalid.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "", "table", "plain":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", clierrors.InvalidChoiceError("--output format", s, Formats)
	}
}

// Structured reports whether f encodes cell values rather than drawing them.
func (f Format) Structured() bool {
	return f != FormatText
}

// envelope is the structured form of a table. Cells keep their types:
// null, boolean, integer or string.
type envelope struct {
	Headers []string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print writes t. Text output is drawn by r and followed by a newline unless
// the table is empty; structured output uses r only for its headers.
func (p *Printer) Print(ctx context.Context, r *table.Renderer, t table.Table) error {
	if r == nil {
		r = table.New()
	}
	switch p.format {
	case FormatText, "":
		return p.printText(r, t)
	case FormatJSON:
		return p.printJSON(ctx, r, t)
	case FormatNDJSON:
		return p.printNDJSON(t)
	case FormatYAML:
		return p.printYAML(r, t)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printText(r *table.Renderer, t table.Table) error {
	out := r.Render(t)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(p.w, out+"\n")
	return err
}

// printJSON outputs the envelope as JSON, indented unless compact JSON is
// requested through the context.
func (p *Printer) printJSON(ctx context.Context, r *table.Renderer, t table.Table) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	if !CompactJSONFromContext(ctx) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(envelope{Headers: r.Headers(), Rows: t.Values()})
}

// printNDJSON outputs one JSON array per row. Headers are not written.
func (p *Printer) printNDJSON(t table.Table) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	for _, row := range t.Values() {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// printYAML outputs the envelope as YAML.
func (p *Printer) printYAML(r *table.Renderer, t table.Table) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(envelope{Headers: r.Headers(), Rows: t.Values()})
}
