package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf)

	l.Info("hidden")
	l.Warn("visible", "points", 100)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "points=100") {
		t.Errorf("expected warn message with fields, got %q", out)
	}
	if !strings.Contains(out, Name) {
		t.Errorf("expected logger name in output, got %q", out)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("chatty", &buf)
	if !l.IsInfo() || l.IsDebug() {
		t.Error("unknown level should fall back to info")
	}
}

func TestOrNull(t *testing.T) {
	l := OrNull(nil)
	if l == nil {
		t.Fatal("expected a logger")
	}
	l.Error("discarded")
}
