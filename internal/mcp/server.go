// Package mcp serves table rendering over the Model Context Protocol.
package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
	"github.com/salmonumbrella/tabulate/internal/input"
	"github.com/salmonumbrella/tabulate/internal/logging"
	"github.com/salmonumbrella/tabulate/internal/table"
	"github.com/salmonumbrella/tabulate/internal/validate"
)

const (
	serverName = "tabulate"

	// ToolName is the name of the single tool the server exposes.
	ToolName = "tabulate"
)

// Server wraps an mcp-go server with the tabulate tool registered.
type Server struct {
	inner *server.MCPServer
	log   *slog.Logger
}

// NewServer builds a server reporting version to clients.
func NewServer(version string) *Server {
	s := &Server{
		inner: server.NewMCPServer(serverName, version, server.WithToolCapabilities(false)),
		log:   logging.For("mcp"),
	}
	s.inner.AddTool(tabulateTool(), s.handleTabulate)
	return s
}

// MCPServer exposes the underlying server for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.inner
}

// Serve speaks MCP over in and out until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.inner)
	stdio.SetErrorLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError))
	s.log.Debug("serving over stdio", "tool", ToolName)
	return stdio.Listen(ctx, in, out)
}

func tabulateTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Render rows as a plain-text table with dashed borders. "+
			"Cells may be null, booleans, integers or strings."),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description(`Rows to render: a JSON array of arrays, e.g. [["a", 1], [null, true]], or an array of objects`),
		),
		mcp.WithString("format",
			mcp.Description("Format of data: json (default), ndjson, yaml, csv or tsv"),
		),
		mcp.WithArray("headers",
			mcp.Description("Header line printed above the rows"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("header_row",
			mcp.Description("Use the first row of data as the header line"),
		),
		mcp.WithNumber("min_width",
			mcp.Description("Minimum column width (default 5)"),
		),
	)
}

func (s *Server) handleTabulate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := input.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return toolError(err), nil
	}
	if format == input.FormatAuto {
		format = input.FormatJSON
	}

	doc, err := input.Decode([]byte(data), input.Options{
		Format:    format,
		HeaderRow: req.GetBool("header_row", false),
	})
	if err != nil {
		s.log.Debug("tool call rejected", "tool", ToolName, "error", err)
		return toolError(err), nil
	}

	opts := []table.Option{}
	headers := req.GetStringSlice("headers", nil)
	if len(headers) == 0 {
		headers = doc.Headers
	}
	if len(headers) > 0 {
		opts = append(opts, table.WithHeaders(headers...))
	}
	if _, ok := req.GetArguments()["min_width"]; ok {
		n, err := validate.MinWidthNumber("min_width", req.GetFloat("min_width", table.DefaultMinWidth))
		if err != nil {
			return toolError(err), nil
		}
		opts = append(opts, table.WithMinWidth(n))
	}

	return mcp.NewToolResultText(table.Render(doc.Table, opts...)), nil
}

// toolError reports err to the calling model, with the hint when there is one.
func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if hint := clierrors.UserSuggestion(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return mcp.NewToolResultError(msg)
}
