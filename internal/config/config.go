package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// KnownServices lists the services tools can belong to.
var KnownServices = []string{"sheets", "drive"}

// Config holds all server configuration loaded from environment variables and CLI flags.
type Config struct {
	Credentials struct {
		ServiceAccountKey      string
		ApplicationCredentials string
		OAuthClientFile        string
		OAuthTokenFile         string
		ConsentTimeout         time.Duration
	}
	Server struct {
		Transport string
		Host      string
		Port      int
	}
	Init struct {
		Attempts      int
		Backoff       time.Duration
		ExitOnFailure bool
	}
	ToolTier        string
	TiersFile       string
	EnabledServices []string
	ReadOnly        bool
	LogLevel        string
}

// LoadDotEnv loads variables from a .env file without overriding variables
// already set in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and the given CLI
// arguments (without the program name). Flags take precedence over the
// environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Credentials.ServiceAccountKey = os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY")
	cfg.Credentials.ApplicationCredentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	cfg.Credentials.OAuthClientFile = envOrDefault("GOOGLE_OAUTH_CREDENTIALS_FILE", "credentials.json")
	cfg.Credentials.OAuthTokenFile = envOrDefault("GOOGLE_OAUTH_TOKEN_FILE", "token.json")
	if cfg.Credentials.ConsentTimeout, err = envDuration("GOOGLE_OAUTH_CONSENT_TIMEOUT", 5*time.Minute); err != nil {
		return nil, err
	}

	cfg.EnabledServices = splitList(os.Getenv("ENABLED_SERVICES"))
	cfg.Server.Transport = envOrDefault("MCP_TRANSPORT", "stdio")
	cfg.Server.Host = envOrDefault("MCP_HOST", "127.0.0.1")
	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.ToolTier = envOrDefault("TOOL_TIER", "complete")
	cfg.TiersFile = os.Getenv("TOOL_TIERS_FILE")
	cfg.ReadOnly = envBool("SHEETS_MCP_READ_ONLY")
	cfg.Init.ExitOnFailure = envBool("SHEETS_MCP_EXIT_ON_INIT_FAILURE")

	if cfg.Server.Port, err = envInt("MCP_PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.Init.Attempts, err = envInt("SHEETS_MCP_INIT_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.Init.Backoff, err = envDuration("SHEETS_MCP_INIT_BACKOFF", time.Second); err != nil {
		return nil, err
	}

	// CLI flags override env vars
	flags := flag.NewFlagSet("google-sheets-mcp", flag.ContinueOnError)
	flags.StringVar(&cfg.Server.Transport, "transport", cfg.Server.Transport, "Transport mode: stdio or streamable-http")
	flags.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "Port for streamable-http")
	var toolsFlag string
	flags.StringVar(&toolsFlag, "tools", "", "Services to enable (comma-separated): sheets,drive")
	flags.StringVar(&cfg.ToolTier, "tool-tier", cfg.ToolTier, "Load tools by tier: core, extended, or complete")
	flags.StringVar(&cfg.TiersFile, "tool-tiers-file", cfg.TiersFile, "Path to a tool tier YAML file (default: built in)")
	flags.BoolVar(&cfg.ReadOnly, "read-only", cfg.ReadOnly, "Request only read-only scopes, disable write tools")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// CLI --tools flag overrides (not appends to) the ENABLED_SERVICES env var.
	if toolsFlag != "" {
		cfg.EnabledServices = splitList(toolsFlag)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Server.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unknown transport %q: use stdio or streamable-http", c.Server.Transport)
	}
	if TierLevel(c.ToolTier) == 0 {
		return fmt.Errorf("unknown tool tier %q: use core, extended or complete", c.ToolTier)
	}
	for _, s := range c.EnabledServices {
		if !slices.Contains(KnownServices, s) {
			return fmt.Errorf("unknown service %q: use %s", s, strings.Join(KnownServices, ", "))
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Init.Attempts < 1 {
		return fmt.Errorf("SHEETS_MCP_INIT_ATTEMPTS must be at least 1, got %d", c.Init.Attempts)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
