// Package iocontext carries the process streams through context.Context so
// commands can be run against in-memory buffers.
package iocontext

import (
	"context"
	"io"
	"os"
)

type ctxKey int

const (
	stdinKey ctxKey = iota
	stdoutKey
	stderrKey
)

// Streams groups the three standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// System returns the process streams.
func System() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// WithStreams injects all three streams into ctx. Nil members are skipped,
// leaving any value already in ctx visible.
func WithStreams(ctx context.Context, s Streams) context.Context {
	if s.In != nil {
		ctx = context.WithValue(ctx, stdinKey, s.In)
	}
	if s.Out != nil {
		ctx = context.WithValue(ctx, stdoutKey, s.Out)
	}
	if s.Err != nil {
		ctx = context.WithValue(ctx, stderrKey, s.Err)
	}
	return ctx
}

// WithIO injects stdout and stderr writers into context.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return WithStreams(ctx, Streams{Out: stdout, Err: stderr})
}

// Stdin returns the stdin reader from context, or nil if not set.
func Stdin(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey).(io.Reader); ok {
		return r
	}
	return nil
}

// Stdout returns the stdout writer from context, or nil if not set.
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey).(io.Writer); ok {
		return w
	}
	return nil
}

// Stderr returns the stderr writer from context, or nil if not set.
func Stderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey).(io.Writer); ok {
		return w
	}
	return nil
}

// StdinOrDefault returns stdin from context or os.Stdin.
func StdinOrDefault(ctx context.Context) io.Reader {
	if r := Stdin(ctx); r != nil {
		return r
	}
	return os.Stdin
}

// StdoutOrDefault returns stdout from context or the provided default.
func StdoutOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stdout(ctx); w != nil {
		return w
	}
	return def
}

// StderrOrDefault returns stderr from context or the provided default.
func StderrOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stderr(ctx); w != nil {
		return w
	}
	return def
}
