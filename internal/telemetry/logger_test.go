package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected nop logger")
	}
}

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("quiz.debug")
	logger.Info("quiz.start", zap.String("session_id", "abc"), zap.Int("count", 10))
	_ = logger.Sync()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("expected json line, got %q", sc.Text())
		}
		lines = append(lines, entry)
	}
	if len(lines) != 1 {
		t.Fatalf("expected debug entry filtered, got %d lines", len(lines))
	}
	if lines[0]["msg"] != "quiz.start" || lines[0]["session_id"] != "abc" {
		t.Fatalf("unexpected entry %#v", lines[0])
	}
	if _, ok := lines[0]["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestNewDebugLevel(t *testing.T) {
	logger, err := New(filepath.Join(t.TempDir(), "debug.jsonl"), true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected debug enabled")
	}
}

func TestNewBadPath(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "dir", "x.jsonl"), false); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
