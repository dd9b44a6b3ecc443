package table

import "strconv"

// Kind identifies which value a Cell holds.
type Kind uint8

const (
	// KindAbsent is an empty cell (null, missing).
	KindAbsent Kind = iota
	// KindBool is a boolean cell.
	KindBool
	// KindInt is a signed 64-bit integer cell.
	KindInt
	// KindText is a string cell.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is a single table value. The zero Cell is absent.
type Cell struct {
	kind Kind
	b    bool
	i    int64
	s    string
}

// Row is an ordered sequence of cells. Rows in a Table may differ in length.
type Row []Cell

// Table is an ordered sequence of rows.
type Table []Row

// Absent returns an empty cell.
func Absent() Cell { return Cell{} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{kind: KindBool, b: b} }

// Int returns an integer cell.
func Int(i int64) Cell { return Cell{kind: KindInt, i: i} }

// Text returns a string cell.
func Text(s string) Cell { return Cell{kind: KindText, s: s} }

// Kind reports which value c holds.
func (c Cell) Kind() Kind { return c.kind }

// IsAbsent reports whether c holds no value.
func (c Cell) IsAbsent() bool { return c.kind == KindAbsent }

// String returns the rendered text of the cell.
func (c Cell) String() string {
	switch c.kind {
	case KindBool:
		if c.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindText:
		return c.s
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value: nil, bool, int64 or string.
// Structured encoders use it to keep cell types intact.
func (c Cell) Value() any {
	switch c.kind {
	case KindBool:
		return c.b
	case KindInt:
		return c.i
	case KindText:
		return c.s
	default:
		return nil
	}
}

// Columns returns the length of the longest row.
func (t Table) Columns() int {
	n := 0
	for _, row := range t {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Cell returns the cell at row, col; positions past the end of a row are absent.
func (t Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t) || col < 0 || col >= len(t[row]) {
		return Absent()
	}
	return t[row][col]
}

// Values converts every cell with Cell.Value, keeping ragged rows as they are.
func (t Table) Values() [][]any {
	out := make([][]any, len(t))
	for i, row := range t {
		vals := make([]any, len(row))
		for j, c := range row {
			vals[j] = c.Value()
		}
		out[i] = vals
	}
	return out
}
