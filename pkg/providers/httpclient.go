package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxErrorBodyBytes caps how much of an error response body is kept for
// diagnostics. Provider error pages can be large HTML blobs.
const maxErrorBodyBytes = 2048

// HTTPClient is the base implementation for HTTP-based provider adapters.
// It provides connection pooling, timeout handling, and uniform error
// mapping to the typed errors in this package.
//
// Concrete provider adapters (gemini, grok) embed this struct and
// implement the Provider interface on top of PostJSON.
//
// Each request is a single attempt. Failed requests are never retried;
// the caller decides whether to surface the failure or try again.
type HTTPClient struct {
	// config contains the provider configuration
	config ProviderConfig

	// client is the HTTP client with connection pooling
	client *http.Client
}

// NewHTTPClient creates a new base HTTP client with connection pooling.
func NewHTTPClient(config ProviderConfig) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	return &HTTPClient{
		config: config,
		client: client,
	}
}

// Name returns the provider's configured name.
func (c *HTTPClient) Name() string {
	return c.config.Name
}

// Type returns the provider's type.
func (c *HTTPClient) Type() string {
	return c.config.Type
}

// Config returns the provider's configuration.
func (c *HTTPClient) Config() ProviderConfig {
	return c.config
}

// PostJSON marshals reqBody, POSTs it to url with the given headers, and
// returns the raw response bytes on any 2xx status.
//
// Failures map to typed errors: request construction or network failures
// return a TransportError with StatusCode zero, a context deadline expiry
// returns a TransportError wrapping context.DeadlineExceeded, and a
// non-2xx status returns a TransportError carrying the status code and a
// truncated copy of the body.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, reqBody interface{}, headers map[string]string) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("sending request to provider",
		"provider", c.config.Name,
		"url", url,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		cause := err
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
		}
		return nil, &TransportError{
			Provider: c.config.Name,
			Message:  err.Error(),
			Cause:    cause,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &TransportError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    string(errorBody),
		}
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Provider: c.config.Name,
			Message:  fmt.Sprintf("failed to read response: %v", err),
			Cause:    err,
		}
	}

	return responseBytes, nil
}

// Close closes idle HTTP connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	slog.Debug("provider closed", "provider", c.config.Name)
	return nil
}
