package registry

import (
	"fmt"
	"log/slog"

	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/providers/gemini"
	"lumos-hq/relay/pkg/providers/grok"
)

// NewProvider creates a provider instance based on the configuration.
//
// Supported provider types:
//   - "gemini": Google Gemini generateContent API
//   - "grok": Grok chat API
//
// The provider type is taken from config.Type, or inferred from the
// provider name when empty.
func NewProvider(config providers.ProviderConfig) (providers.Provider, error) {
	providerType := config.Type
	if providerType == "" {
		providerType = inferProviderType(config.Name)
		config.Type = providerType
	}

	slog.Debug("creating provider",
		"name", config.Name,
		"type", providerType,
		"base_url", config.BaseURL,
	)

	var provider providers.Provider
	var err error

	switch providerType {
	case "gemini":
		provider, err = gemini.NewProvider(config)

	case "grok":
		provider, err = grok.NewProvider(config)

	default:
		return nil, &providers.ConfigError{
			Provider: config.Name,
			Field:    "type",
			Message:  fmt.Sprintf("unsupported provider type: %q (supported: gemini, grok)", providerType),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", config.Name, err)
	}

	return provider, nil
}

// NewFromConfigs builds a complete registry from per-provider configs.
// Any construction failure closes the providers built so far and fails
// the whole registry.
func NewFromConfigs(defaultName string, configs []providers.ProviderConfig) (*Registry, error) {
	built := make([]providers.Provider, 0, len(configs))
	for _, cfg := range configs {
		p, err := NewProvider(cfg)
		if err != nil {
			for _, b := range built {
				b.Close()
			}
			return nil, err
		}
		built = append(built, p)
	}

	reg, err := New(defaultName, built...)
	if err != nil {
		for _, b := range built {
			b.Close()
		}
		return nil, err
	}
	return reg, nil
}

// inferProviderType infers the provider type from the provider name.
func inferProviderType(name string) string {
	switch name {
	case "grok":
		return "grok"
	default:
		return "gemini"
	}
}
