package config

import "time"

// Default values for configuration fields.
const (
	// Telegram defaults
	DefaultTelegramMode = "polling"
	DefaultPollTimeout  = 50
	DefaultMessageLimit = 4096

	// Provider defaults
	DefaultProviderTimeout = 30 * time.Second

	// Router defaults
	DefaultProvider = "gemini"

	// Transcript defaults
	DefaultTranscriptBackend      = "sqlite"
	DefaultTranscriptSQLitePath   = "data/transcripts.db"
	DefaultRetentionDays          = 30
	DefaultPruneSchedule          = "0 3 * * *"
	DefaultTranscriptAsyncBuffer  = 1000
	DefaultTranscriptWriteTimeout = 5 * time.Second
	DefaultMaxPreviewLength       = 500

	// Telemetry defaults
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultMetricsPath = "/metrics"

	// Server defaults
	DefaultListenAddress   = "0.0.0.0:8443"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// ApplyDefaults fills in zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Telegram.Mode == "" {
		cfg.Telegram.Mode = DefaultTelegramMode
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = DefaultPollTimeout
	}
	if cfg.Telegram.MessageLimit == 0 {
		cfg.Telegram.MessageLimit = DefaultMessageLimit
	}

	for name, p := range cfg.Providers {
		if p.Timeout == 0 {
			p.Timeout = DefaultProviderTimeout
		}
		cfg.Providers[name] = p
	}

	if cfg.Router.DefaultProvider == "" {
		cfg.Router.DefaultProvider = DefaultProvider
	}

	if cfg.Transcript.Enabled == nil {
		enabled := true
		cfg.Transcript.Enabled = &enabled
	}
	if cfg.Transcript.Backend == "" {
		cfg.Transcript.Backend = DefaultTranscriptBackend
	}
	if cfg.Transcript.SQLitePath == "" {
		cfg.Transcript.SQLitePath = DefaultTranscriptSQLitePath
	}
	if cfg.Transcript.RetentionDays == 0 {
		cfg.Transcript.RetentionDays = DefaultRetentionDays
	}
	if cfg.Transcript.PruneSchedule == "" {
		cfg.Transcript.PruneSchedule = DefaultPruneSchedule
	}
	if cfg.Transcript.AsyncBuffer == 0 {
		cfg.Transcript.AsyncBuffer = DefaultTranscriptAsyncBuffer
	}
	if cfg.Transcript.WriteTimeout == 0 {
		cfg.Transcript.WriteTimeout = DefaultTranscriptWriteTimeout
	}
	if cfg.Transcript.MaxPreviewLength == 0 {
		cfg.Transcript.MaxPreviewLength = DefaultMaxPreviewLength
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Enabled == nil {
		enabled := true
		cfg.Telemetry.Metrics.Enabled = &enabled
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
}
