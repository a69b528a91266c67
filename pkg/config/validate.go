package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	// Field is the dotted path to the field, e.g. "telegram.mode".
	Field string

	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects all field errors found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError when
// any rule fails. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Telegram.Token == "" {
		errs = append(errs, FieldError{
			Field:   "telegram.token",
			Message: "bot token is required (set RELAY_TELEGRAM_TOKEN)",
		})
	}
	switch cfg.Telegram.Mode {
	case "polling", "webhook":
	default:
		errs = append(errs, FieldError{
			Field:   "telegram.mode",
			Message: fmt.Sprintf("must be \"polling\" or \"webhook\", got %q", cfg.Telegram.Mode),
		})
	}
	if cfg.Telegram.Mode == "webhook" && cfg.Telegram.WebhookURL == "" {
		errs = append(errs, FieldError{
			Field:   "telegram.webhook_url",
			Message: "required in webhook mode",
		})
	}
	if cfg.Telegram.PollTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "telegram.poll_timeout",
			Message: "must not be negative",
		})
	}

	if len(cfg.Providers) == 0 {
		errs = append(errs, FieldError{
			Field:   "providers",
			Message: "at least one provider is required",
		})
	}
	for name, p := range cfg.Providers {
		if p.APIKey == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.api_key", name),
				Message: fmt.Sprintf("API key is required (set RELAY_PROVIDERS_%s_API_KEY)", strings.ToUpper(name)),
			})
		}
		if p.Timeout < 0 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("providers.%s.timeout", name),
				Message: "must not be negative",
			})
		}
	}

	if _, ok := cfg.Providers[cfg.Router.DefaultProvider]; !ok && len(cfg.Providers) > 0 {
		errs = append(errs, FieldError{
			Field:   "router.default_provider",
			Message: fmt.Sprintf("%q is not a configured provider", cfg.Router.DefaultProvider),
		})
	}
	if cfg.Router.SystemPrompt == "" && cfg.Router.SystemPromptFile == "" {
		errs = append(errs, FieldError{
			Field:   "router.system_prompt",
			Message: "either system_prompt or system_prompt_file is required",
		})
	}
	if cfg.Router.WatchPromptFile && cfg.Router.SystemPromptFile == "" {
		errs = append(errs, FieldError{
			Field:   "router.watch_prompt_file",
			Message: "requires system_prompt_file",
		})
	}

	switch cfg.Transcript.Backend {
	case "sqlite", "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "transcript.backend",
			Message: fmt.Sprintf("must be \"sqlite\" or \"memory\", got %q", cfg.Transcript.Backend),
		})
	}
	if cfg.Transcript.RetentionDays < 0 {
		errs = append(errs, FieldError{
			Field:   "transcript.retention_days",
			Message: "must not be negative",
		})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be debug, info, warn, or error, got %q", cfg.Telemetry.Logging.Level),
		})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be \"json\" or \"text\", got %q", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
