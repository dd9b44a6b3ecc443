package cmd

import (
	"context"
	"testing"

	"github.com/salmonumbrella/tabulate/internal/config"
)

func TestErrorFormatContext(t *testing.T) {
	ctx := context.Background()
	if got := ErrorFormatFromContext(ctx); got != "" {
		t.Errorf("ErrorFormatFromContext() = %q, want empty string", got)
	}
	ctx = WithErrorFormat(ctx, "yaml")
	if got := ErrorFormatFromContext(ctx); got != "yaml" {
		t.Errorf("ErrorFormatFromContext() = %q, want yaml", got)
	}
}

func TestErrorFormatFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), errorFormatKey{}, 123)
	if got := ErrorFormatFromContext(ctx); got != "" {
		t.Errorf("ErrorFormatFromContext() with wrong type = %q, want empty string", got)
	}
}

func TestConfigFromContext(t *testing.T) {
	if cfg := ConfigFromContext(context.Background()); cfg == nil || !cfg.IsEmpty() {
		t.Errorf("ConfigFromContext() default = %+v, want empty config", cfg)
	}

	want := &config.Config{Output: "json"}
	ctx := WithConfig(context.Background(), want)
	if got := ConfigFromContext(ctx); got != want {
		t.Errorf("ConfigFromContext() = %p, want %p", got, want)
	}

	ctx = WithConfig(context.Background(), nil)
	if got := ConfigFromContext(ctx); got == nil {
		t.Error("ConfigFromContext() with nil config should not return nil")
	}
}
