package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/todo-api/internal/config"
)

func TestApplyLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		applyLevel(tt.level)
		if got := zerolog.GlobalLevel(); got != tt.expected {
			t.Errorf("applyLevel(%q): expected %s, got %s", tt.level, tt.expected, got)
		}
	}
}

func TestApplyOutputs_WritesConsoleAndFile(t *testing.T) {
	prevLogger := log.Logger
	t.Cleanup(func() { log.Logger = prevLogger })

	path := filepath.Join(t.TempDir(), "logs", "todoapi.log")
	var console bytes.Buffer

	applyOutputs(&console, config.LogConfig{File: path, MaxSizeMB: 1})
	log.Info().Str("component", "test").Msg("hello rotation")

	if !strings.Contains(console.String(), "hello rotation") {
		t.Fatalf("expected console output to contain message, got %q", console.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello rotation") {
		t.Fatalf("expected log file to contain message, got %q", string(data))
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Errorf("expected log file without color codes")
	}
}
