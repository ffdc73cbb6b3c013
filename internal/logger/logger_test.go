package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestDefaultIsNop(t *testing.T) {
	// Must not panic before Init.
	Info("before init")
	Named("test").Debug("before init")
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			if err := InitWithOptions(Options{Level: tt.level, File: FileConfig{Path: path, MaxSizeMB: 10}}); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			content := readLog(t, path)
			for _, exp := range tt.expected {
				if !strings.Contains(content, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(content, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamedComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithOptions(Options{Level: "info", File: FileConfig{Path: path, MaxSizeMB: 1}}); err != nil {
		t.Fatal(err)
	}
	Named("pipeline").Info("bake done")

	content := readLog(t, path)
	if !strings.Contains(content, "pipeline") || !strings.Contains(content, "bake done") {
		t.Errorf("component name missing from %q", content)
	}
}

func TestNoOutputsDiscards(t *testing.T) {
	if err := InitWithOptions(Options{Level: "debug"}); err != nil {
		t.Fatal(err)
	}
	if Log.Core().Enabled(0) {
		t.Error("logger without outputs should be disabled")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/ocean.log")

	if cfg.Path != "/tmp/ocean.log" {
		t.Errorf("expected path /tmp/ocean.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
