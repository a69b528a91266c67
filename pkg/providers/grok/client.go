package grok

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"lumos-hq/relay/pkg/providers"
)

// Provider is the Grok provider adapter.
// It implements the providers.Provider interface for Grok's chat endpoint.
type Provider struct {
	*providers.HTTPClient
}

const (
	// DefaultBaseURL is the Grok API endpoint.
	DefaultBaseURL = "https://api.grok.x.com"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "grok-1"

	// defaultMaxTokens caps the completion length per request.
	defaultMaxTokens = 512

	// defaultTemperature is the fixed sampling temperature.
	defaultTemperature = 0.7
)

// ChatRequest represents a Grok chat request.
type ChatRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// ChatResponse represents a Grok chat response.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// NewProvider creates a new Grok provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "grok",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Grok",
		}
	}

	if config.Type == "" {
		config.Type = "grok"
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	config.ApplyDefaults()

	p := &Provider{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("Grok provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// buildPrompt renders the conversation as a single flat prompt string:
// the system prompt, one "role: content" line per history turn, then the
// new user message on a final "user: " line.
func buildPrompt(req *providers.ChatRequest) string {
	var b strings.Builder
	b.WriteString(req.SystemPrompt)
	for _, turn := range req.History {
		b.WriteString("\n")
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
	}
	b.WriteString("\nuser: ")
	b.WriteString(req.UserText)
	return b.String()
}

// Complete sends a completion request to Grok.
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	if req.UserText == "" {
		return nil, &providers.InvalidInputError{
			Field:   "user_text",
			Message: "message text must be non-empty",
		}
	}

	cfg := p.Config()
	url := fmt.Sprintf("%s/v1/chat", cfg.BaseURL)
	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
		"Content-Type":  "application/json",
	}

	grokReq := &ChatRequest{
		Model:       cfg.Model,
		Prompt:      buildPrompt(req),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	body, err := p.PostJSON(ctx, url, grokReq, headers)
	if err != nil {
		return nil, err
	}

	var grokResp ChatResponse
	if err := json.Unmarshal(body, &grokResp); err != nil {
		return nil, &providers.MalformedResponseError{
			Provider: p.Name(),
			Raw:      truncate(string(body), 2048),
			Cause:    err,
		}
	}

	if grokResp.Reply == "" {
		return nil, &providers.RefusalError{
			Provider: p.Name(),
			Message:  "empty reply in response",
		}
	}

	slog.Debug("completion request succeeded",
		"provider", p.Name(),
		"reply_length", len(grokResp.Reply),
	)

	return &providers.ChatResponse{
		Provider: p.Name(),
		Reply:    grokResp.Reply,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
