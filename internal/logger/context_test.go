package logger_test

import (
	"context"
	"testing"

	"github.com/janscope/annotator/internal/logger"
)

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	ctx := logger.WithContext(context.Background(), nop)
	got := logger.FromContext(ctx)

	if got != nop {
		t.Errorf("FromContext returned %v, want the same logger instance %v", got, nop)
	}
}

func TestFromContext_NoLogger_ReturnsFallback(t *testing.T) {
	t.Parallel()

	got := logger.FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext on empty context returned nil, want non-nil fallback logger")
	}

	// The fallback is warn-level; calls below the level must still succeed.
	got.Debug("debug message")
	got.Warn("warn message", logger.String("key", "value"))
}

func TestWithContext_OverwritesPrevious(t *testing.T) {
	t.Parallel()

	// Real loggers so each allocation has a distinct pointer (NewNop
	// returns a zero-size struct Go may intern to one address).
	first := mustTestLogger(t)
	second := mustTestLogger(t)

	ctx := logger.WithContext(context.Background(), first)
	ctx = logger.WithContext(ctx, second)

	got := logger.FromContext(ctx)
	if got != second {
		t.Error("FromContext returned the first logger, want the second (overwritten) logger")
	}
}

func TestFromContext_FallbackConsistency(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	if a == nil || b == nil {
		t.Fatal("expected non-nil fallback loggers")
	}
	if a != b {
		t.Error("FromContext returned different fallback instances, want the same singleton")
	}
}

// mustTestLogger creates a real logger for testing, failing the test on error.
func mustTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	return l
}
