package swen

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// The default logger must discard without formatting.
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should report disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
