package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, log.DebugLevel)
	ctx := withLogger(context.Background(), logger)

	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("expected a fallback logger, got nil")
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked through info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing: %q", out)
	}
}

func TestDefaultCacheDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "alt")
	t.Setenv("STRATA_CACHE_DIR", dir)

	got, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir: %v", err)
	}
	if got != dir {
		t.Errorf("defaultCacheDir = %q, want %q", got, dir)
	}
}

func TestObserverEventsLogAtDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := logObserver{logger: newLogger(&buf, log.DebugLevel)}

	obs.ReferenceSelected("users", 3, 5)
	obs.OffsetsComputed("users", map[int][]string{-1: {"chat"}, 1: {"teams"}})
	obs.Normalized(1, 1)

	out := buf.String()
	for _, want := range []string{"reference entity selected", "relative placement", "layers normalized"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if strings.Index(out, "above") > strings.Index(out, "below") {
		t.Errorf("offsets not logged in ascending order: %q", out)
	}
}
