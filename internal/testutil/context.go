package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds container startup and database round-trips in tests.
const DefaultTimeout = 2 * time.Minute

// Context возвращает context с DefaultTimeout, отменяемый при завершении теста.
func Context(tb testing.TB) context.Context {
	tb.Helper()
	return ContextWithTimeout(tb, DefaultTimeout)
}

// ContextWithTimeout создаёт context с timeout и автоматически отменяет его при завершении теста.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)

	return ctx
}
