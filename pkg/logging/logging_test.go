package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/pledge/pkg/logging"
)

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &logging.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatText || cfg.Output != logging.OutputStdout {
			t.Errorf("defaults = %s/%s/%s, want info/text/stdout", cfg.Level, cfg.Format, cfg.Output)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "debug")
		t.Setenv("TEST_LOG_FORMAT", "json")
		t.Setenv("TEST_LOG_OUTPUT", "stderr")
		t.Setenv("TEST_LOG_SOURCE", "true")

		cfg := &logging.Config{Level: logging.LevelWarn}
		env := &logging.Env{
			Level:     "TEST_LOG_LEVEL",
			Format:    "TEST_LOG_FORMAT",
			Output:    "TEST_LOG_OUTPUT",
			AddSource: "TEST_LOG_SOURCE",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatJSON {
			t.Errorf("env = %s/%s, want debug/json", cfg.Level, cfg.Format)
		}
		if cfg.Output != logging.OutputStderr || !cfg.AddSource {
			t.Errorf("env output = %s source = %v, want stderr/true", cfg.Output, cfg.AddSource)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, cfg := range []logging.Config{
			{Level: "verbose"},
			{Format: "xml"},
			{Output: "syslog"},
		} {
			if err := cfg.Finalize(nil); err == nil {
				t.Errorf("Finalize(%+v) error = nil", cfg)
			}
		}
	})
}

func TestConfig_Merge(t *testing.T) {
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	cfg.Merge(&logging.Config{Format: logging.FormatJSON})

	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatJSON {
		t.Errorf("Merge() = %s/%s, want info/json", cfg.Level, cfg.Format)
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("%s.ToSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	logger := logging.New(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatJSON})

	if logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("warn disabled at warn level")
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}
	logger := logging.NewWriter(cfg, &buf, slog.String("service", "pledge"), slog.String("version", "1.2.0"))

	logger.With("system", "auth").Info("session opened")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal record %q: %v", buf.String(), err)
	}

	want := map[string]string{
		"msg":     "session opened",
		"service": "pledge",
		"version": "1.2.0",
		"system":  "auth",
	}
	for k, v := range want {
		if record[k] != v {
			t.Errorf("record[%q] = %v, want %q", k, record[k], v)
		}
	}
	if _, ok := record["source"]; ok {
		t.Error("source attached without add_source")
	}
}

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatText, AddSource: true}
	logging.NewWriter(cfg, &buf, slog.String("service", "pledge")).Info("ready")

	out := buf.String()
	for _, part := range []string{"msg=ready", "service=pledge", "source="} {
		if !strings.Contains(out, part) {
			t.Errorf("output %q missing %q", out, part)
		}
	}
}

func TestOutput_Writer(t *testing.T) {
	if logging.OutputStderr.Writer() != os.Stderr {
		t.Error("stderr output does not write to os.Stderr")
	}
	if logging.Output("").Writer() != os.Stdout {
		t.Error("empty output does not default to os.Stdout")
	}
}
