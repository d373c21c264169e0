package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/erraggy/ramltools/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Whitelist file; empty means the built-in defaults.
	ConfigFile string

	// Parse cache: on/off and the number of documents kept.
	CacheEnabled bool
	CacheMaxSize int

	// Validate tool defaults.
	ValidateLimit int
	MaxLimit      int

	// Input limits.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from RAMLTOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ConfigFile:    os.Getenv("RAMLTOOLS_CONFIG_FILE"),
		CacheEnabled:  envBool("RAMLTOOLS_CACHE_ENABLED", true),
		CacheMaxSize:  envInt("RAMLTOOLS_CACHE_MAX_SIZE", 10),
		ValidateLimit: envInt("RAMLTOOLS_VALIDATE_LIMIT", 100),
		MaxLimit:      envInt("RAMLTOOLS_MAX_LIMIT", 1000),
		MaxInlineSize: int64(envInt("RAMLTOOLS_MAX_INLINE_SIZE", 10*1024*1024)),
	}
}

// whitelist loads the configured whitelists once per process.
var whitelist = sync.OnceValues(func() (*config.Config, error) {
	if cfg.ConfigFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfg.ConfigFile)
})

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
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
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}
