package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{value: "", env: "production", want: slog.LevelInfo},
		{value: "", env: "development", want: slog.LevelDebug},
		{value: "WARN", env: "", want: slog.LevelWarn},
		{value: "fatal", env: "", want: LevelCritical},
		{value: "loud", env: "", want: slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.value, tc.env); got != tc.want {
			t.Fatalf("parseLevel(%q, %q) = %v, want %v", tc.value, tc.env, got, tc.want)
		}
	}
}

func TestNewWithOptionsAddsServiceAndEnv(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Env: "Production", Format: "json", Service: "finance-api", Output: &buf})

	log.Info("http.server: listening", "addr", ":8080")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected json output, got %q", buf.String())
	}
	if record["service"] != "finance-api" || record["env"] != "production" {
		t.Fatalf("unexpected attributes: %v", record)
	}
	if record["addr"] != ":8080" {
		t.Fatalf("expected addr attribute, got %v", record["addr"])
	}
}

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "text")

	log.Critical("app: cannot start")
	if !strings.Contains(buf.String(), "level=CRITICAL") {
		t.Fatalf("expected CRITICAL level, got %q", buf.String())
	}
}

func TestErrorHelpersSkipNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("expenses.create: rejected", nil)
	log.InternalError("expenses.create: failed", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil errors, got %q", buf.String())
	}

	log.BusinessError("expenses.create: rejected", errors.New("amount must be positive"), "account_id", "acc-1")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "account_id=acc-1") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
