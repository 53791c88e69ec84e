package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := newSlogLogger(&buf, "info").With("till_id", "t-1")
	l.Info("caixa aberto", "operator_id", "u-1")
	l.Debug("ignorado")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("saída inválida: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "caixa aberto" || entry["till_id"] != "t-1" || entry["operator_id"] != "u-1" {
		t.Errorf("entrada inesperada: %v", entry)
	}
}
