package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validConfig = `
telegram:
  token: "123456:test-token"
  mode: "polling"
  poll_timeout: 25

providers:
  gemini:
    type: "gemini"
    api_key: "gemini-key-123"
    model: "gemini-2.0-flash"
    timeout: "20s"
  grok:
    type: "grok"
    api_key: "grok-key-456"

router:
  default_provider: "gemini"
  system_prompt: "You are a helpful assistant."

transcript:
  backend: "memory"

telemetry:
  logging:
    level: "debug"
    format: "text"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.Token != "123456:test-token" {
		t.Errorf("expected token %q, got %q", "123456:test-token", cfg.Telegram.Token)
	}
	if cfg.Telegram.PollTimeout != 25 {
		t.Errorf("expected poll timeout 25, got %d", cfg.Telegram.PollTimeout)
	}

	gemini, exists := cfg.Providers["gemini"]
	if !exists {
		t.Fatal("expected gemini provider")
	}
	if gemini.APIKey != "gemini-key-123" {
		t.Errorf("expected API key %q, got %q", "gemini-key-123", gemini.APIKey)
	}
	if gemini.Timeout != 20*time.Second {
		t.Errorf("expected timeout %v, got %v", 20*time.Second, gemini.Timeout)
	}

	// Zero-valued fields get defaults.
	grok := cfg.Providers["grok"]
	if grok.Timeout != DefaultProviderTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultProviderTimeout, grok.Timeout)
	}
	if cfg.Telegram.MessageLimit != DefaultMessageLimit {
		t.Errorf("expected default message limit %d, got %d", DefaultMessageLimit, cfg.Telegram.MessageLimit)
	}
	if cfg.Transcript.PruneSchedule != DefaultPruneSchedule {
		t.Errorf("expected default prune schedule %q, got %q", DefaultPruneSchedule, cfg.Transcript.PruneSchedule)
	}

	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("expected logging format %q, got %q", "text", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("expected read error, got: %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123"
  invalid yaml here: [
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	// No token, no providers, no system prompt.
	path := writeConfig(t, `
telemetry:
  logging:
    level: "info"
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := make(map[string]bool)
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"telegram.token", "providers", "router.system_prompt"} {
		if !fields[want] {
			t.Errorf("expected validation error for field %q, errors: %v", want, verr.Errors)
		}
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("RELAY_TELEGRAM_TOKEN", "env-token")
	t.Setenv("RELAY_PROVIDERS_GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("RELAY_ROUTER_DEFAULT_PROVIDER", "grok")
	t.Setenv("RELAY_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.Token != "env-token" {
		t.Errorf("expected token %q, got %q", "env-token", cfg.Telegram.Token)
	}
	if cfg.Providers["gemini"].APIKey != "env-gemini-key" {
		t.Errorf("expected API key %q, got %q", "env-gemini-key", cfg.Providers["gemini"].APIKey)
	}
	if cfg.Router.DefaultProvider != "grok" {
		t.Errorf("expected default provider %q, got %q", "grok", cfg.Router.DefaultProvider)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected logging level %q, got %q", "warn", cfg.Telemetry.Logging.Level)
	}

	// File values without overrides are untouched.
	if cfg.Providers["grok"].APIKey != "grok-key-456" {
		t.Errorf("grok API key changed unexpectedly: %q", cfg.Providers["grok"].APIKey)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("RELAY_ROUTER_DEFAULT_PROVIDER", "unknown")

	_, err := LoadConfigWithEnvOverrides(writeConfig(t, validConfig))
	if err == nil {
		t.Fatal("expected validation error for unknown default provider")
	}
	if !strings.Contains(err.Error(), "router.default_provider") {
		t.Errorf("expected default_provider error, got: %v", err)
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gemini", "GEMINI"},
		{"grok", "GROK"},
		{"my-provider", "MY_PROVIDER"},
		{"v2", "V2"},
	}
	for _, tt := range tests {
		if got := envName(tt.in); got != tt.want {
			t.Errorf("envName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
