package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Level: "info", Format: "json", Output: &buf})
	l.LogInfo("Application is running on %v:%v...", "localhost", "8092")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}

	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}

	if entry["message"] != "Application is running on localhost:8092..." {
		t.Errorf("Unexpected message %v", entry["message"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Level: "error", Output: &buf})
	l.LogInfo("hidden")
	l.LogDebugf("hidden too")

	if buf.Len() != 0 {
		t.Fatalf("Expected no output below error level, got %q", buf.String())
	}

	l.LogErrorf("Failed to run: %v", "boom")

	if !strings.Contains(buf.String(), "Failed to run: boom") {
		t.Errorf("Expected error line, got %q", buf.String())
	}
}

func TestLoggerWithComponentAndAccess(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Output: &buf}).With("web")
	l.Access("GET", "/liveness", "HTTP/1.1", "curl", "abc", 204, time.Millisecond)

	out := buf.String()
	for _, want := range []string{`"component":"web"`, `"type":"access"`, `"status":204`, `"traceID":"abc"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in %q", want, out)
		}
	}
}
