package app

import (
	"log/slog"
	"testing"

	"github.com/pwdcare/registry-backend/internal/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		cfg := config.LogConfig{Level: "info", Format: format}
		if logger := NewLogger(cfg); logger == nil {
			t.Fatalf("NewLogger(%q) returned nil", format)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
