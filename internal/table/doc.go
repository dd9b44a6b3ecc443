// Package table renders rows of simple values as a plain-text table.
//
// A Cell holds exactly one of four kinds of value:
//   - absent: rendered as the empty string
//   - bool: rendered as True or False
//   - int: rendered as decimal digits
//   - text: rendered unmodified
//
// Tables are drawn with dashed border lines above and below the rows:
//
//	t, _ := table.FromRows([][]any{{nil}, {"a"}, {0}, {false}})
//	fmt.Println(table.Render(t))
//
//	-----
//
//	a
//	0
//	False
//	-----
//
// Each border segment is as wide as its column, and never narrower than the
// minimum width (5 by default). Rendering is a pure function of its input;
// a Renderer may be shared between goroutines.
package table
