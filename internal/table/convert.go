package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

// FromValue converts a Go value into a Cell.
//
// nil and nil pointers become absent cells, booleans become Bool, every
// integer type (and integral json.Number) becomes Int, strings become Text.
// Any other value fails with an error matching clierrors.ErrUnsupportedValueKind.
func FromValue(v any) (Cell, error) {
	switch x := v.(type) {
	case nil:
		return Absent(), nil
	case Cell:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return Cell{}, unsupported(fmt.Sprintf("json.Number(%s)", x.String()))
		}
		return Int(i), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Absent(), nil
		}
		return FromValue(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Cell{}, unsupported(fmt.Sprintf("%T(%d) overflows int64", v, u))
		}
		return Int(int64(u)), nil
	}
	return Cell{}, unsupported(fmt.Sprintf("%T", v))
}

// FromRows converts rows of Go values into a Table. The first unsupported
// value is reported with its row and column.
func FromRows(rows [][]any) (Table, error) {
	t := make(Table, len(rows))
	for i, values := range rows {
		row, err := FromRow(values)
		if err != nil {
			var uv *clierrors.UnsupportedValueError
			if errors.As(err, &uv) {
				return nil, uv.At(i, uv.Column)
			}
			return nil, err
		}
		t[i] = row
	}
	return t, nil
}

// FromRow converts a single row of Go values.
func FromRow(values []any) (Row, error) {
	row := make(Row, len(values))
	for j, v := range values {
		c, err := FromValue(v)
		if err != nil {
			var uv *clierrors.UnsupportedValueError
			if errors.As(err, &uv) {
				return nil, uv.At(-1, j)
			}
			return nil, err
		}
		row[j] = c
	}
	return row, nil
}

// MustFromRows is like FromRows but panics on unsupported values.
// It is meant for literals in tests and examples.
func MustFromRows(rows [][]any) Table {
	t, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return t
}

func unsupported(typ string) *clierrors.UnsupportedValueError {
	return &clierrors.UnsupportedValueError{Row: -1, Column: -1, Type: typ}
}
