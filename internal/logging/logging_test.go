package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "curate.log")
	logger, err := New("debug", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hello from test")
	logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello from test") {
		t.Errorf("log file missing message: %q", b)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
