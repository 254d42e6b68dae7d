package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	l, buf := newBufLogger()
	ctx := context.Background()

	l.Debug(ctx, "d", "k", "v")
	l.Info(ctx, "i")
	l.Warn(ctx, "w")
	l.Error(ctx, "e")

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 4 {
		t.Fatalf("expected 4 log lines, got %d: %s", lines, buf.String())
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	l, buf := newBufLogger()
	child := l.With("card_id", "abc")
	child.Info(context.Background(), "loaded")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["card_id"] != "abc" || rec["msg"] != "loaded" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
