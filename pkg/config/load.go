package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults,
// and validates the result. Environment variables are not consulted;
// use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention RELAY_SECTION_FIELD (e.g., RELAY_TELEGRAM_TOKEN) and
// always take precedence over the file.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies RELAY_SECTION_FIELD environment variables.
func applyEnvOverrides(cfg *Config) {
	// Telegram
	if val := os.Getenv("RELAY_TELEGRAM_TOKEN"); val != "" {
		cfg.Telegram.Token = val
	}
	if val := os.Getenv("RELAY_TELEGRAM_MODE"); val != "" {
		cfg.Telegram.Mode = val
	}
	if val := os.Getenv("RELAY_TELEGRAM_WEBHOOK_URL"); val != "" {
		cfg.Telegram.WebhookURL = val
	}
	if val := os.Getenv("RELAY_TELEGRAM_POLL_TIMEOUT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Telegram.PollTimeout = n
		}
	}

	// Providers
	for name, p := range cfg.Providers {
		prefix := "RELAY_PROVIDERS_" + envName(name)
		if val := os.Getenv(prefix + "_API_KEY"); val != "" {
			p.APIKey = val
		}
		if val := os.Getenv(prefix + "_BASE_URL"); val != "" {
			p.BaseURL = val
		}
		if val := os.Getenv(prefix + "_MODEL"); val != "" {
			p.Model = val
		}
		if val := os.Getenv(prefix + "_TIMEOUT"); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				p.Timeout = d
			}
		}
		cfg.Providers[name] = p
	}

	// Router
	if val := os.Getenv("RELAY_ROUTER_DEFAULT_PROVIDER"); val != "" {
		cfg.Router.DefaultProvider = val
	}
	if val := os.Getenv("RELAY_ROUTER_SYSTEM_PROMPT"); val != "" {
		cfg.Router.SystemPrompt = val
	}
	if val := os.Getenv("RELAY_ROUTER_SYSTEM_PROMPT_FILE"); val != "" {
		cfg.Router.SystemPromptFile = val
	}

	// Transcript
	if val := os.Getenv("RELAY_TRANSCRIPT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Transcript.Enabled = &b
		}
	}
	if val := os.Getenv("RELAY_TRANSCRIPT_BACKEND"); val != "" {
		cfg.Transcript.Backend = val
	}
	if val := os.Getenv("RELAY_TRANSCRIPT_SQLITE_PATH"); val != "" {
		cfg.Transcript.SQLitePath = val
	}
	if val := os.Getenv("RELAY_TRANSCRIPT_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Transcript.RetentionDays = n
		}
	}

	// Telemetry
	if val := os.Getenv("RELAY_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("RELAY_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}

	// Server
	if val := os.Getenv("RELAY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
}

// envName converts a provider name to its environment variable segment.
func envName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-('a'-'A'))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
