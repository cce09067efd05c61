package docpack

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewLogger(buf, LogWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("messages below level were logged: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("messages at or above level missing: %s", output)
	}
}

func TestLogger_WithFields(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewLogger(buf, LogInfo).WithFields(Fields{"part": "word/document.xml"})

	logger.Info("reclassifying")

	output := buf.String()
	if !strings.Contains(output, "part=word/document.xml") {
		t.Errorf("field missing from output: %s", output)
	}

	// WithField returns a copy; the original logger is unaffected.
	buf.Reset()
	derived := logger.WithField("variant", "plain")
	derived.Info("x")
	if !strings.Contains(buf.String(), "variant=plain") {
		t.Errorf("derived field missing: %s", buf.String())
	}

	buf.Reset()
	logger.Info("y")
	if strings.Contains(buf.String(), "variant=plain") {
		t.Errorf("derived field leaked into parent: %s", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewLogger(buf, LogOff)

	logger.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("LogOff still produced output: %s", buf.String())
	}

	logger.SetLevel(LogDebug)
	if !logger.IsDebugMode() {
		t.Error("IsDebugMode should report true after SetLevel(LogDebug)")
	}
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug output missing after SetLevel: %s", buf.String())
	}
}

func TestLogger_DebugRemoval(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewLogger(buf, LogDebug)

	set := NewRemovedSet()
	set.Parts = append(set.Parts, "word/vbaProject.bin")
	set.Relationships = append(set.Relationships, RemovedRelationship{Scope: "word/document.xml", ID: "rId1"})

	logger.DebugRemoval(set)

	output := buf.String()
	if !strings.Contains(output, "word/vbaProject.bin") {
		t.Errorf("removed part missing from trace: %s", output)
	}
	if !strings.Contains(output, "rId1") {
		t.Errorf("removed relationship missing from trace: %s", output)
	}

	// Nil sets and non-debug levels are no-ops.
	logger.DebugRemoval(nil)
	quiet := NewLogger(buf, LogInfo)
	buf.Reset()
	quiet.DebugRemoval(set)
	if buf.Len() != 0 {
		t.Errorf("DebugRemoval logged at info level: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogDebug},
		{"info", LogInfo},
		{"warn", LogWarn},
		{"error", LogError},
		{"off", LogOff},
		{"bogus", LogInfo},
		{"", LogInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
