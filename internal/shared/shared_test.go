package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "component", "test")

		child.Info("scoped")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected log output to contain key, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Info("suppressed")

		if strings.Contains(buf.String(), "suppressed") {
			t.Error("expected info log to be suppressed at error level")
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		first := GenerateID()
		second := GenerateID()

		if first == "" {
			t.Error("expected non-empty ID")
		}
		if first == second {
			t.Error("expected IDs to be unique")
		}
	})
}
