package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	cleanup, err := Setup(Config{Dir: dir, Level: "info"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	L().Info("contact.added", "name", "Alice")
	L().Debug("hidden.at.info")

	if Path() != filepath.Join(dir, "abook.log") {
		t.Errorf("Expected log path in %s, got %s", dir, Path())
	}
	if err := cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abook.log"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, `"msg":"contact.added"`) {
		t.Errorf("Expected info entry in log, got %s", content)
	}
	if strings.Contains(content, "hidden.at.info") {
		t.Error("Debug entry should be filtered at info level")
	}
	if Path() != "" {
		t.Error("Expected path reset after cleanup")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
