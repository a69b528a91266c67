package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"lumos-hq/relay/pkg/providers"
)

// Provider is the Gemini provider adapter.
// It implements the providers.Provider interface for the generateContent API.
type Provider struct {
	*providers.HTTPClient
}

const (
	// DefaultBaseURL is the Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-2.0-flash"
)

// NewProvider creates a new Gemini provider instance.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: "gemini",
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.APIKey == "" {
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "api_key",
			Message:  "API key is required for Gemini",
		}
	}

	if config.Type == "" {
		config.Type = "gemini"
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

	slog.Info("Gemini provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"model", config.Model,
	)

	return p, nil
}

// Complete sends a completion request to Gemini.
func (p *Provider) Complete(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	if req.UserText == "" {
		return nil, &providers.InvalidInputError{
			Field:   "user_text",
			Message: "message text must be non-empty",
		}
	}

	cfg := p.Config()
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", cfg.BaseURL, cfg.Model)
	headers := map[string]string{
		"X-goog-api-key": cfg.APIKey,
		"Content-Type":   "application/json",
	}

	body, err := p.PostJSON(ctx, url, transformRequest(req), headers)
	if err != nil {
		return nil, err
	}

	var geminiResp GenerateResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, &providers.MalformedResponseError{
			Provider: p.Name(),
			Raw:      truncate(string(body), 2048),
			Cause:    err,
		}
	}

	reply, ok := extractReply(&geminiResp)
	if !ok {
		message := "no candidates in response"
		if geminiResp.Error != nil && geminiResp.Error.Message != "" {
			message = geminiResp.Error.Message
		}
		return nil, &providers.RefusalError{
			Provider: p.Name(),
			Message:  message,
		}
	}

	slog.Debug("completion request succeeded",
		"provider", p.Name(),
		"reply_length", len(reply),
	)

	return &providers.ChatResponse{
		Provider: p.Name(),
		Reply:    reply,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
