package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwconfig "github.com/msto63/pcomb/foundation/core/config"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("pcomb")

	if cfg.Name != "pcomb" {
		t.Errorf("Name = %v, want pcomb", cfg.Name)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %v, want console", cfg.Format)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel mdwlog.Level
		wantErr   bool
	}{
		{"debug json", "debug", "json", mdwlog.LevelDebug, false},
		{"warning alias", "warning", "text", mdwlog.LevelWarn, false},
		{"trace logfmt", "trace", "logfmt", mdwlog.LevelTrace, false},
		{"invalid level", "loud", "json", 0, true},
		{"invalid format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closer, err := NewLogger(LoggerConfig{Name: "test", Level: tt.level, Format: tt.format, Output: &buf})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer closer.Close()
			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewLogger(LoggerConfig{Name: "pcomb", Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer.Close()

	logger.Info("grammar built", mdwlog.Fields{"rules": 18})
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if entry["message"] != "grammar built" || entry["logger"] != "pcomb" || entry["rules"] != float64(18) {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pcomb.log")
	var buf bytes.Buffer

	logger, closer, err := NewLogger(LoggerConfig{Name: "pcomb", Level: "info", Format: "text", File: path, Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("written twice")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "written twice") || !strings.Contains(buf.String(), "written twice") {
		t.Errorf("file = %q, output = %q", data, buf.String())
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := mdwconfig.LoadFromString("[log]\nlevel = \"debug\"\nformat = \"json\"\n", mdwconfig.FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	got := FromConfig("pcomb", cfg)
	if got.Level != "debug" || got.Format != "json" || got.File != "" {
		t.Errorf("FromConfig() = %+v", got)
	}

	if def := FromConfig("pcomb", nil); def != DefaultLoggerConfig("pcomb") {
		t.Errorf("FromConfig(nil) = %+v", def)
	}
}

func TestNewSimpleLogger(t *testing.T) {
	if NewSimpleLogger("test") == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
}
