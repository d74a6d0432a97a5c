package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Transport        string
	HTTPHost         string
	HTTPPort         int
	AuthSecret       string
	DBPath           string
	JournalEnabled   bool
	JournalRetention time.Duration // zero keeps entries forever
	ScriptTimeout    time.Duration
	ScanTimeout      time.Duration
	DefaultAccount   string
	OSAScriptPath    string
	LogLevel         slog.Level
}

func Load() Config {
	return Config{
		Transport:        getEnvTransport("TRANSPORT", TransportStdio),
		HTTPHost:         getEnvString("HTTP_HOST", "127.0.0.1"),
		HTTPPort:         getEnvInt("HTTP_PORT", 3025),
		AuthSecret:       getEnvString("AUTH_SECRET", ""),
		DBPath:           getEnvString("DB_PATH", ""),
		JournalEnabled:   getEnvBool("JOURNAL_ENABLED", true),
		JournalRetention: getEnvDays("JOURNAL_RETENTION_DAYS", 30),
		ScriptTimeout:    getEnvSeconds("SCRIPT_TIMEOUT_SEC", 30),
		ScanTimeout:      getEnvSeconds("SCAN_TIMEOUT_SEC", 120),
		DefaultAccount:   getEnvString("DEFAULT_ACCOUNT", ""),
		OSAScriptPath:    getEnvString("OSASCRIPT_PATH", "osascript"),
		LogLevel:         getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvSeconds reads a positive number of seconds.
func getEnvSeconds(key string, fallback int) time.Duration {
	seconds := getEnvInt(key, fallback)
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

// getEnvDays reads a number of days. Zero is allowed, negatives fall back.
func getEnvDays(key string, fallback int) time.Duration {
	days := getEnvInt(key, fallback)
	if days < 0 {
		days = fallback
	}
	return time.Duration(days) * 24 * time.Hour
}

func getEnvTransport(key, fallback string) string {
	switch strings.ToLower(getEnvString(key, fallback)) {
	case TransportHTTP:
		return TransportHTTP
	case TransportStdio:
		return TransportStdio
	default:
		return fallback
	}
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
