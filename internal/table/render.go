package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultMinWidth is the narrowest a column border may be.
	DefaultMinWidth = 5
	// DefaultSeparator separates columns in every line.
	DefaultSeparator = " "
	borderRune       = "-"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeaders sets a header line. When headers are present the top border is
// replaced by a separator line below the headers.
func WithHeaders(headers ...string) Option {
	return func(r *Renderer) {
		r.headers = append([]string(nil), headers...)
	}
}

// WithMinWidth sets the minimum column width. Negative values mean zero.
func WithMinWidth(n int) Option {
	return func(r *Renderer) {
		if n < 0 {
			n = 0
		}
		r.minWidth = n
	}
}

// WithColumnSeparator sets the text placed between columns.
func WithColumnSeparator(sep string) Option {
	return func(r *Renderer) {
		r.sep = sep
	}
}

// WithMissing sets the text rendered for absent cells.
func WithMissing(s string) Option {
	return func(r *Renderer) {
		r.missing = s
	}
}

// Renderer draws tables. It is immutable once built.
type Renderer struct {
	headers  []string
	minWidth int
	sep      string
	missing  string
}

// New creates a Renderer with defaults and applies opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		minWidth: DefaultMinWidth,
		sep:      DefaultSeparator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws t with a Renderer built from opts.
func Render(t Table, opts ...Option) string {
	return New(opts...).Render(t)
}

// Headers returns a copy of the configured headers.
func (r *Renderer) Headers() []string {
	return append([]string(nil), r.headers...)
}

// layout is the per-call view of a table: every cell stringified, plus the
// derived widths and alignment of each column.
type layout struct {
	cols    int
	texts   [][]string
	widths  []int
	numeric []bool
}

func (r *Renderer) layout(t Table) layout {
	cols := t.Columns()
	if len(r.headers) > cols {
		cols = len(r.headers)
	}

	l := layout{
		cols:    cols,
		texts:   make([][]string, len(t)),
		widths:  make([]int, cols),
		numeric: make([]bool, cols),
	}
	for j := range l.widths {
		l.widths[j] = r.minWidth
	}
	for j, h := range r.headers {
		l.widths[j] = max(l.widths[j], textWidth(h))
	}

	sawInt := make([]bool, cols)
	sawOther := make([]bool, cols)
	for i := range t {
		texts := make([]string, cols)
		for j := 0; j < cols; j++ {
			c := t.Cell(i, j)
			switch c.Kind() {
			case KindAbsent:
				texts[j] = r.missing
			case KindInt:
				sawInt[j] = true
				texts[j] = c.String()
			default:
				sawOther[j] = true
				texts[j] = c.String()
			}
			l.widths[j] = max(l.widths[j], textWidth(texts[j]))
		}
		l.texts[i] = texts
	}
	for j := range l.numeric {
		l.numeric[j] = sawInt[j] && !sawOther[j]
	}
	return l
}

// ColumnWidths returns the border width of every column of t.
func (r *Renderer) ColumnWidths(t Table) []int {
	return r.layout(t).widths
}

// Render draws t. Lines are joined with "\n" and there is no trailing newline.
// A table with no columns renders as the empty string.
func (r *Renderer) Render(t Table) string {
	l := r.layout(t)
	if l.cols == 0 {
		return ""
	}

	border := r.border(l.widths)
	lines := make([]string, 0, len(t)+4)
	if len(r.headers) > 0 {
		header := make([]string, l.cols)
		copy(header, r.headers)
		lines = append(lines, r.line(l, header), border)
	} else {
		lines = append(lines, border)
	}
	for _, texts := range l.texts {
		lines = append(lines, r.line(l, texts))
	}
	lines = append(lines, border)
	return strings.Join(lines, "\n")
}

func (r *Renderer) border(widths []int) string {
	parts := make([]string, len(widths))
	for j, w := range widths {
		parts[j] = strings.Repeat(borderRune, w)
	}
	return strings.Join(parts, r.sep)
}

// line renders one row of texts. A single column is written as-is; wider
// tables pad every cell, right-justifying integer-only columns. A cell with
// line breaks spreads the row over several lines, shorter cells padded with
// blank pieces.
func (r *Renderer) line(l layout, texts []string) string {
	if l.cols == 1 {
		return texts[0]
	}
	pieces := make([][]string, l.cols)
	height := 1
	for j, s := range texts {
		pieces[j] = strings.Split(s, "\n")
		height = max(height, len(pieces[j]))
	}

	lines := make([]string, height)
	parts := make([]string, l.cols)
	for k := range lines {
		for j := range parts {
			var s string
			if k < len(pieces[j]) {
				s = pieces[j][k]
			}
			parts[j] = pad(s, l.widths[j], l.numeric[j])
		}
		lines[k] = strings.Join(parts, r.sep)
	}
	return strings.Join(lines, "\n")
}

// textWidth is the display width of the widest line of s.
func textWidth(s string) int {
	w := 0
	for _, part := range strings.Split(s, "\n") {
		w = max(w, runewidth.StringWidth(part))
	}
	return w
}

func pad(s string, width int, right bool) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	fill := strings.Repeat(" ", gap)
	if right {
		return fill + s
	}
	return s + fill
}
