package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/apiverify/verifier"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Verify tool defaults.
	MaxSeverity string
	Strict      bool
	PolicyPath  string

	// Limits.
	MaxInlineSize int64
	IssueLimit    int
	MaxLimit      int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APIVERIFY_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:  envBool("APIVERIFY_CACHE_ENABLED", true),
		CacheMaxSize:  envInt("APIVERIFY_CACHE_MAX_SIZE", 16),
		CacheTTL:      envDuration("APIVERIFY_CACHE_TTL", 10*time.Minute),
		MaxSeverity:   envSeverity("APIVERIFY_MAX_SEVERITY"),
		Strict:        envBool("APIVERIFY_STRICT", false),
		PolicyPath:    os.Getenv("APIVERIFY_POLICY"),
		MaxInlineSize: int64(envInt("APIVERIFY_MAX_INLINE_SIZE", 5*1024*1024)),
		IssueLimit:    envInt("APIVERIFY_MAX_ISSUES", 200),
		MaxLimit:      envInt("APIVERIFY_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// envSeverity returns the severity name in key, or "" when unset or invalid.
func envSeverity(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, err := verifier.ParseSeverity(v); err != nil {
		slog.Warn("invalid severity env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}
