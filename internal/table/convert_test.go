package table

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

type status string

type count uint16

func TestCell_String(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
		kind Kind
	}{
		{"zero value", Cell{}, "", KindAbsent},
		{"absent", Absent(), "", KindAbsent},
		{"false", Bool(false), "False", KindBool},
		{"true", Bool(true), "True", KindBool},
		{"zero", Int(0), "0", KindInt},
		{"negative", Int(-1234567), "-1234567", KindInt},
		{"large", Int(math.MaxInt64), "9223372036854775807", KindInt},
		{"text", Text("a"), "a", KindText},
		{"text untouched", Text("  padded\t"), "  padded\t", KindText},
		{"empty text", Text(""), "", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.cell.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestCell_Value(t *testing.T) {
	got := Table{{Absent(), Bool(true)}, {Int(3)}, {Text("x")}}.Values()
	want := [][]any{{nil, true}, {int64(3)}, {"x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValue(t *testing.T) {
	s := "ptr"
	var nilPtr *string
	tests := []struct {
		name  string
		value any
		want  Cell
	}{
		{"nil", nil, Absent()},
		{"nil pointer", nilPtr, Absent()},
		{"pointer", &s, Text("ptr")},
		{"bool", false, Bool(false)},
		{"string", "a", Text("a")},
		{"int", 0, Int(0)},
		{"int8", int8(-8), Int(-8)},
		{"int32", int32(32), Int(32)},
		{"int64", int64(math.MinInt64), Int(math.MinInt64)},
		{"uint8", uint8(255), Int(255)},
		{"uint64 in range", uint64(math.MaxInt64), Int(math.MaxInt64)},
		{"json integer", json.Number("451"), Int(451)},
		{"named string", status("ok"), Text("ok")},
		{"named uint", count(9), Int(9)},
		{"cell", Bool(true), Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.value)
			if err != nil {
				t.Fatalf("FromValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FromValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromValue_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"float", 1.5},
		{"json fraction", json.Number("1.5")},
		{"uint64 overflow", uint64(math.MaxUint64)},
		{"slice", []string{"a"}},
		{"map", map[string]any{"a": 1}},
		{"struct", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.value)
			if !errors.Is(err, clierrors.ErrUnsupportedValueKind) {
				t.Fatalf("FromValue() error = %v, want ErrUnsupportedValueKind", err)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	got, err := FromRows([][]any{{nil}, {"a"}, {0}, {false}})
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	want := Table{{Absent()}, {Text("a")}, {Int(0)}, {Bool(false)}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Cell{})); diff != "" {
		t.Errorf("FromRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRows_ReportsPosition(t *testing.T) {
	_, err := FromRows([][]any{{"a", 1}, {"b", 2.5}})

	var uv *clierrors.UnsupportedValueError
	if !errors.As(err, &uv) {
		t.Fatalf("FromRows() error = %v, want *UnsupportedValueError", err)
	}
	if uv.Row != 1 || uv.Column != 1 || uv.Type != "float64" {
		t.Errorf("error = %+v, want row 1 column 1 float64", uv)
	}
}

func TestMustFromRows_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFromRows() did not panic")
		}
	}()
	MustFromRows([][]any{{3.14}})
}

func TestTable_Cell(t *testing.T) {
	tbl := Table{{Text("a"), Int(1)}, {Text("b")}}
	if got := tbl.Columns(); got != 2 {
		t.Errorf("Columns() = %d, want 2", got)
	}
	if got := tbl.Cell(1, 1); !got.IsAbsent() {
		t.Errorf("Cell(1, 1) = %v, want absent", got)
	}
	if got := tbl.Cell(5, 0); !got.IsAbsent() {
		t.Errorf("Cell(5, 0) = %v, want absent", got)
	}
	if got := tbl.Cell(0, 1); got != Int(1) {
		t.Errorf("Cell(0, 1) = %v, want 1", got)
	}
}
