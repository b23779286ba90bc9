package appcontext_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"couponview/appcontext"
)

func TestLoggerFromContext_Default(t *testing.T) {
	if appcontext.LoggerFromContext(context.Background()) != slog.Default() {
		t.Error("expected slog.Default() for a context without a logger")
	}
}

func TestWithStore_AddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := appcontext.WithStore(appcontext.WithLogger(context.Background(), logger), "publix")
	appcontext.LoggerFromContext(ctx).InfoContext(ctx, "loading")

	if !strings.Contains(buf.String(), "store=publix") {
		t.Errorf("expected store attribute in log output, got %q", buf.String())
	}
}
