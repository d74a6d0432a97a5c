package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"TRANSPORT", "HTTP_PORT", "DB_PATH", "JOURNAL_ENABLED", "SCRIPT_TIMEOUT_SEC",
		"SCAN_TIMEOUT_SEC", "DEFAULT_ACCOUNT", "OSASCRIPT_PATH", "LOG_LEVEL",
		"JOURNAL_RETENTION_DAYS", "HTTP_HOST", "AUTH_SECRET",
	} {
		t.Setenv(key, "")
	}
	// LOG_LEVEL is set but empty, which is not a valid level.
	cfg := Load()

	if cfg.Transport != TransportStdio {
		t.Errorf("Transport = %q, want %q", cfg.Transport, TransportStdio)
	}
	if cfg.HTTPHost != "127.0.0.1" {
		t.Errorf("HTTPHost = %q", cfg.HTTPHost)
	}
	if cfg.AuthSecret != "" {
		t.Errorf("AuthSecret = %q, want empty", cfg.AuthSecret)
	}
	if cfg.HTTPPort != 3025 {
		t.Errorf("HTTPPort = %d, want 3025", cfg.HTTPPort)
	}
	if !cfg.JournalEnabled {
		t.Error("JournalEnabled = false, want true")
	}
	if cfg.JournalRetention != 30*24*time.Hour {
		t.Errorf("JournalRetention = %v", cfg.JournalRetention)
	}
	if cfg.ScriptTimeout != 30*time.Second {
		t.Errorf("ScriptTimeout = %v", cfg.ScriptTimeout)
	}
	if cfg.ScanTimeout != 120*time.Second {
		t.Errorf("ScanTimeout = %v", cfg.ScanTimeout)
	}
	if cfg.OSAScriptPath != "osascript" {
		t.Errorf("OSAScriptPath = %q", cfg.OSAScriptPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRANSPORT", "HTTP")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("HTTP_HOST", "0.0.0.0")
	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("DB_PATH", " /tmp/journal.db ")
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("SCRIPT_TIMEOUT_SEC", "5")
	t.Setenv("SCAN_TIMEOUT_SEC", "-1")
	t.Setenv("DEFAULT_ACCOUNT", "Work")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JOURNAL_RETENTION_DAYS", "0")

	cfg := Load()

	if cfg.Transport != TransportHTTP {
		t.Errorf("Transport = %q", cfg.Transport)
	}
	if cfg.HTTPHost != "0.0.0.0" || cfg.AuthSecret != "s3cret" {
		t.Errorf("HTTPHost = %q, AuthSecret = %q", cfg.HTTPHost, cfg.AuthSecret)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.DBPath != "/tmp/journal.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JournalEnabled {
		t.Error("JournalEnabled = true, want false")
	}
	if cfg.ScriptTimeout != 5*time.Second {
		t.Errorf("ScriptTimeout = %v", cfg.ScriptTimeout)
	}
	if cfg.ScanTimeout != 120*time.Second {
		t.Errorf("ScanTimeout = %v, want fallback", cfg.ScanTimeout)
	}
	if cfg.JournalRetention != 0 {
		t.Errorf("JournalRetention = %v, want 0", cfg.JournalRetention)
	}
	if cfg.DefaultAccount != "Work" {
		t.Errorf("DefaultAccount = %q", cfg.DefaultAccount)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestUnknownTransportFallsBack(t *testing.T) {
	t.Setenv("TRANSPORT", "carrier-pigeon")
	if got := Load().Transport; got != TransportStdio {
		t.Errorf("Transport = %q, want %q", got, TransportStdio)
	}
}
