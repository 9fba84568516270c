package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ferdiebergado/accountkit/internal/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(tc.in); got != tc.want {
				t.Errorf("logging.ParseLevel(%q) = %v, want: %v", tc.in, got, tc.want)
			}
		})
	}
}

//nolint:paralleltest // mutates the default logger
func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logging.SetupLogger("production", "info", &buf)
	slog.Info("hello", "k", "v")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("production log line is not json: %v", err)
	}

	if got, want := entry["msg"], "hello"; got != want {
		t.Errorf("entry[msg] = %v, want: %v", got, want)
	}

	buf.Reset()
	logging.SetupLogger("development", "error", &buf)
	slog.Info("dropped")
	slog.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("output = %q, want info message filtered out", out)
	}
	if !strings.Contains(out, "msg=kept") {
		t.Errorf("output = %q, want text formatted error message", out)
	}
}
