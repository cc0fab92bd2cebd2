package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/kajjjak/ATM/internal/ctxlog"
)

// LogContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. Set ATM_TEST_LOGS=true to print the
// captured output when the test finishes.
func LogContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("ATM_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}
