// Package output writes tables in the format chosen with --output.
//
// Supported formats:
//   - text: the plain-text table drawn by package table (default)
//   - json: {"headers": [...], "rows": [[...], ...]} with typed cells
//   - ndjson: one JSON array per row
//   - yaml: the same envelope as json
//
// The format is parsed once in the root command and carried in the context:
//
//	format, err := output.ParseFormat(formatFlag)
//	if err != nil {
//	    return err
//	}
//	ctx := output.WithFormat(cmd.Context(), format)
//
// Commands then build a Printer from it:
//
//	printer := output.NewPrinter(stdout, output.FormatFromContext(ctx))
//	return printer.Print(ctx, renderer, t)
package output
