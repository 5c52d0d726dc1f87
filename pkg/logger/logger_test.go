package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugGate(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	DebugEnabled = false
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Expected no debug output, got %q", buf.String())
	}

	DebugEnabled = true
	defer func() { DebugEnabled = false }()
	Debugf("shown %d", 2)
	Warnf("careful")

	got := buf.String()
	if !strings.Contains(got, "[DEBUG] shown 2\n") {
		t.Errorf("Missing debug line in %q", got)
	}
	if !strings.Contains(got, "[WARN] careful\n") {
		t.Errorf("Missing warn line in %q", got)
	}
}
