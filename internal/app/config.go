package app

import (
	"fmt"
	"strings"
	"time"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/commands"
	"torn_trade_values/internal/providers"
	"torn_trade_values/internal/values"
)

const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceSheets = "sheets"
	SourceTorn   = "torn"
)

// Config holds everything read from the environment at startup.
type Config struct {
	// Value sources, merged in order
	Sources []string

	ValuesFile    string
	ValuesDB      string
	ValuesDBQuery string

	SpreadsheetID    string
	SpreadsheetRange string
	CredentialsFile  string

	TornAPIKey   string
	TornCacheTTL time.Duration

	// Chat
	CommandPrefix string
	DefaultRadius int

	// ntfy relay
	NtfyEnabled  bool
	NtfyURL      string
	NtfyTopic    string
	NtfyPriority string
}

// LoadConfig reads the configuration from the environment. Call SetupEnvironment first
// so values from .env are visible.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Sources: splitSources(GetEnvWithDefault("VALUES_SOURCE", SourceFile)),

		ValuesFile:    GetEnvWithDefault("VALUES_FILE", "values.json"),
		ValuesDB:      GetEnvWithDefault("VALUES_DB", "values.db"),
		ValuesDBQuery: GetEnvWithDefault("VALUES_DB_QUERY", values.DefaultSQLiteQuery),

		SpreadsheetID:    GetEnvWithDefault("SPREADSHEET_ID", ""),
		SpreadsheetRange: GetEnvWithDefault("SPREADSHEET_RANGE", "Values!A1:B1000"),
		CredentialsFile:  GetEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),

		TornAPIKey:   GetEnvWithDefault("TORN_API_KEY", ""),
		TornCacheTTL: time.Duration(getEnvInt("TORN_CACHE_TTL_MINUTES", 60)) * time.Minute,

		CommandPrefix: GetEnvWithDefault("COMMAND_PREFIX", commands.DefaultPrefix),
		DefaultRadius: getEnvInt("NEAR_DEFAULT_RADIUS", barter.DefaultRadius),

		NtfyEnabled:  getEnvBool("NTFY_ENABLED", false),
		NtfyURL:      GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
		NtfyTopic:    GetEnvWithDefault("NTFY_TOPIC", "torn-trades"),
		NtfyPriority: GetEnvWithDefault("NTFY_PRIORITY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that every selected source has what it needs.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("VALUES_SOURCE must name at least one source")
	}
	for _, source := range c.Sources {
		switch source {
		case SourceFile:
			if c.ValuesFile == "" {
				return fmt.Errorf("VALUES_FILE is required for the file source")
			}
		case SourceSQLite:
			if c.ValuesDB == "" {
				return fmt.Errorf("VALUES_DB is required for the sqlite source")
			}
		case SourceSheets:
			if c.SpreadsheetID == "" {
				return fmt.Errorf("SPREADSHEET_ID is required for the sheets source")
			}
		case SourceTorn:
			if len(c.TornAPIKeys()) == 0 {
				return fmt.Errorf("TORN_API_KEY is required for the torn source")
			}
		default:
			return fmt.Errorf("unknown VALUES_SOURCE %q", source)
		}
	}

	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX must not be blank")
	}
	if c.DefaultRadius < 0 {
		return fmt.Errorf("NEAR_DEFAULT_RADIUS must not be negative")
	}
	if c.NtfyEnabled && c.NtfyTopic == "" {
		return fmt.Errorf("NTFY_TOPIC is required when NTFY_ENABLED is set")
	}
	return nil
}

// TornAPIKeys splits TORN_API_KEY, which may list several keys tried in order.
func (c *Config) TornAPIKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.TornAPIKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// MaskedTornKey returns the configured keys with most characters hidden for logging.
func (c *Config) MaskedTornKey() string {
	keys := c.TornAPIKeys()
	if len(keys) == 0 {
		return providers.MaskKey("")
	}
	masked := make([]string, len(keys))
	for i, k := range keys {
		masked[i] = providers.MaskKey(k)
	}
	return strings.Join(masked, ",")
}

func splitSources(raw string) []string {
	var sources []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			sources = append(sources, s)
		}
	}
	return sources
}
