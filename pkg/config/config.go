package config

import "time"

// Config is the root configuration structure for Relay.
type Config struct {
	// Telegram contains Bot API transport configuration.
	Telegram TelegramConfig `yaml:"telegram"`

	// Providers contains configuration for all LLM provider backends.
	// Keys are provider names (e.g., "gemini", "grok").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Router contains turn routing configuration: default provider and
	// system prompt source.
	Router RouterConfig `yaml:"router"`

	// Transcript contains audit trail configuration.
	Transcript TranscriptConfig `yaml:"transcript"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Server contains HTTP server configuration for webhook, health,
	// and metrics endpoints.
	Server ServerConfig `yaml:"server"`
}

// TelegramConfig contains Bot API transport configuration.
type TelegramConfig struct {
	// Token is the bot token. Prefer the RELAY_TELEGRAM_TOKEN
	// environment variable over putting it in the file. Never logged.
	Token string `yaml:"token"`

	// Mode selects how updates arrive: "polling" or "webhook".
	// Default: "polling"
	Mode string `yaml:"mode"`

	// WebhookURL is the public HTTPS URL Telegram posts updates to.
	// Required in webhook mode.
	WebhookURL string `yaml:"webhook_url"`

	// PollTimeout is the long-poll duration in seconds.
	// Default: 50
	PollTimeout int `yaml:"poll_timeout"`

	// MessageLimit caps outbound message length; longer replies are
	// split into ordered chunks. Default: 4096
	MessageLimit int `yaml:"message_limit"`
}

// ProviderConfig contains configuration for one provider backend.
type ProviderConfig struct {
	// Type is the adapter type ("gemini" or "grok"); inferred from the
	// provider name when empty.
	Type string `yaml:"type"`

	// BaseURL overrides the backend endpoint.
	BaseURL string `yaml:"base_url"`

	// APIKey is the backend credential. Prefer environment overrides
	// (RELAY_PROVIDERS_GEMINI_API_KEY). Never logged.
	APIKey string `yaml:"api_key"`

	// Model is the backend model identifier.
	Model string `yaml:"model"`

	// Timeout bounds each provider HTTP call. Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// RouterConfig contains turn routing configuration.
type RouterConfig struct {
	// DefaultProvider is assigned to new sessions. Default: "gemini"
	DefaultProvider string `yaml:"default_provider"`

	// SystemPrompt is the persona text sent ahead of every
	// conversation. Ignored when SystemPromptFile is set.
	SystemPrompt string `yaml:"system_prompt"`

	// SystemPromptFile reads the persona from a file instead.
	SystemPromptFile string `yaml:"system_prompt_file"`

	// WatchPromptFile hot-reloads SystemPromptFile on change.
	WatchPromptFile bool `yaml:"watch_prompt_file"`
}

// TranscriptConfig contains audit trail configuration.
type TranscriptConfig struct {
	// Enabled turns transcript recording on. Default: true
	Enabled *bool `yaml:"enabled"`

	// Backend selects the storage: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/transcripts.db"
	SQLitePath string `yaml:"sqlite_path"`

	// RetentionDays is how long transcripts are kept; 0 keeps forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// AsyncBuffer is the async write queue size. Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout bounds a single storage write. Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MaxPreviewLength truncates stored reply previews. Default: 500
	MaxPreviewLength int `yaml:"max_preview_length"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text". Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint. Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the metrics endpoint path. Default: "/metrics"
	Path string `yaml:"path"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "0.0.0.0:8443"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout bounds reading a request. Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout bounds writing a response. Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout bounds keep-alive waits. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}
