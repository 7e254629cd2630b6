package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/samirrijal/geofences/internal/pkg/logging"
)

func TestNew_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "warn", "json")

	l.Info("dropped")
	l.Warn("kept", "fence_id", "f1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if entry["msg"] != "kept" || entry["fence_id"] != "f1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, "debug", "TEXT").Debug("hello")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger without a scoped one")
	}

	scoped := slog.Default().With("request_id", "abc")
	ctx := logging.WithLogger(context.Background(), scoped)
	if logging.FromContext(ctx) != scoped {
		t.Error("expected scoped logger")
	}
}
