package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "0.0.0.0:8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.SubmitURL != DefaultSubmitURL {
		t.Fatalf("submit url = %q", cfg.SubmitURL)
	}
	if !cfg.Enabled {
		t.Fatal("panel should be enabled by default")
	}
	if cfg.SubmitTimeout != 30*time.Second || cfg.SessionTTL != time.Hour {
		t.Fatalf("unexpected durations %v / %v", cfg.SubmitTimeout, cfg.SessionTTL)
	}
	if cfg.Url() != "http://localhost:8080" {
		t.Fatalf("url = %q", cfg.Url())
	}
}

func TestParseFlags_EnvThenFlags(t *testing.T) {
	t.Setenv("CASE_REPORT_PORT", "9000")
	t.Setenv("CASE_REPORT_ENABLED", "false")
	t.Setenv("CASE_REPORT_SUBMIT_URL", "https://env.example.com/exec")

	cfg, err := ParseFlags([]string{"-submit-url", "https://flag.example.com/exec", "-debug"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "0.0.0.0:9000" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.Enabled {
		t.Fatal("env should have disabled the panel")
	}
	if cfg.SubmitURL != "https://flag.example.com/exec" {
		t.Fatalf("flag should win over env, got %q", cfg.SubmitURL)
	}
	if !cfg.Debug {
		t.Fatal("debug flag ignored")
	}
}

func TestParseFlags_ReportsAllErrors(t *testing.T) {
	_, err := ParseFlags([]string{"-submit-url", "not a url", "-submit-timeout", "0", "-session-ttl", "0"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"-submit-url", "-submit-timeout", "-session-ttl"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %s", msg, want)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	if err := os.WriteFile(file, []byte("CASE_REPORT_SESSION_TTL=60\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CASE_REPORT_SESSION_TTL", "")
	os.Unsetenv("CASE_REPORT_SESSION_TTL")

	if err := LoadEnv(file, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SessionTTL != time.Minute {
		t.Fatalf("session ttl = %v", cfg.SessionTTL)
	}
}
