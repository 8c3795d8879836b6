package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ballsim/internal/config"
)

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(config.LogConfig{Level: "info", Format: "json"}, Options{Console: &buf})

	log.Debug("hidden")
	log.Info("session started")
	_ = log.Sync()

	out := buf.String()
	if !strings.Contains(out, "session started") {
		t.Errorf("expected info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line leaked at info level")
	}
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(config.LogConfig{Level: "loud"}, Options{Console: &buf})
	log.Info("visible")
	_ = log.Sync()

	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected info output with unknown level")
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballsim.log")
	log := NewLogger(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1}, Options{})

	log.Debug("frame skipped")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"frame skipped"`) {
		t.Errorf("expected json line in file, got %q", data)
	}
}

func TestNewLogger_NoSinks(t *testing.T) {
	log := NewLogger(config.LogConfig{}, Options{})
	log.Info("dropped")
}
