package providers

import "context"

// Provider is the core interface that all LLM provider adapters implement.
// It gives the router a unified abstraction over backends with different
// wire formats (Gemini's parts/contents array, Grok's single prompt string).
//
// All methods accept a context.Context for cancellation and timeout control.
// Implementations must respect context cancellation and return immediately
// when the context is cancelled.
//
// Example usage:
//
//	adapter, err := gemini.NewProvider(config)
//	if err != nil {
//	    return err
//	}
//
//	req := &ChatRequest{
//	    SystemPrompt: "You are a helpful assistant.",
//	    UserText:     "Hello!",
//	}
//
//	resp, err := adapter.Complete(ctx, req)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Reply)
type Provider interface {
	// Complete sends one completion request to the backend and returns the
	// normalized response. The request is transformed to the provider-specific
	// format, sent as a single HTTP POST, and the response is parsed back.
	//
	// Complete never retries. Failures are returned as one of the typed
	// errors in this package: TransportError (network, timeout, non-2xx),
	// RefusalError (2xx without the expected reply field), or
	// MalformedResponseError (undecodable body).
	Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Name returns the provider's configured name (e.g., "gemini", "grok").
	Name() string

	// Type returns the provider's type (e.g., "gemini", "grok").
	Type() string

	// Config returns the provider's configuration.
	Config() ProviderConfig

	// Close releases resources (idle HTTP connections).
	// After calling Close, the provider should not be used.
	Close() error
}
