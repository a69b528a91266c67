package providers

import "time"

// Turn is a single exchanged message within a session's history.
// Turns are immutable once appended to a history.
type Turn struct {
	// Role identifies the message sender (user or assistant)
	Role string `json:"role"`

	// Content is the raw message text
	Content string `json:"content"`
}

// ChatRequest is the provider-agnostic completion request.
// Each adapter transforms it into its backend's wire format.
type ChatRequest struct {
	// SystemPrompt is the fixed persona/instruction text, always placed
	// before the conversation in the provider payload.
	SystemPrompt string

	// History is the conversation so far, oldest turn first.
	// Adapters must preserve this order when building payloads.
	History []Turn

	// UserText is the new user message for this turn. Must be non-empty.
	UserText string
}

// ChatResponse is the provider-agnostic completion response.
type ChatResponse struct {
	// Provider is the name of the adapter that produced the reply.
	Provider string

	// Reply is the assistant's text for this turn.
	Reply string
}

// ProviderConfig contains configuration for a single provider instance.
type ProviderConfig struct {
	// Name is the provider identifier (e.g., "gemini", "grok")
	Name string

	// Type is the provider type; inferred from Name when empty
	Type string

	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the authentication secret. Never logged.
	APIKey string

	// Model is the backend model identifier (e.g., "gemini-2.0-flash")
	Model string

	// Timeout bounds each outbound HTTP call
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration
}

// ApplyDefaults fills in zero-valued tuning fields with sensible defaults.
func (c *ProviderConfig) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
}

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultTimeout bounds provider HTTP calls when no timeout is configured.
const DefaultTimeout = 30 * time.Second
