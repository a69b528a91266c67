package providertest

import (
	"errors"
	"testing"
	"time"

	"lumos-hq/relay/pkg/providers"
)

// TestConfig returns a test provider configuration.
func TestConfig(name, providerType string) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:                name,
		Type:                providerType,
		BaseURL:             "http://localhost:8080",
		APIKey:              "test-key",
		Timeout:             5 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     30 * time.Second,
	}
}

// TestConfigWithURL returns a test config with a specific base URL.
func TestConfigWithURL(name, providerType, baseURL string) providers.ProviderConfig {
	config := TestConfig(name, providerType)
	config.BaseURL = baseURL
	return config
}

// TestTurn creates a history turn.
func TestTurn(role, content string) providers.Turn {
	return providers.Turn{
		Role:    role,
		Content: content,
	}
}

// TestChatRequest creates a chat request with optional history turns.
func TestChatRequest(userText string, history ...providers.Turn) *providers.ChatRequest {
	return &providers.ChatRequest{
		SystemPrompt: "You are a test assistant.",
		History:      history,
		UserText:     userText,
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertKind fails the test if err does not classify to the given kind.
func AssertKind(t *testing.T, err error, want providers.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := providers.KindOf(err); got != want {
		t.Fatalf("expected error kind %s, got %s (%v)", want, got, err)
	}
}

// AssertTransportError fails the test unless err is a TransportError with
// the given status code.
func AssertTransportError(t *testing.T, err error, wantStatus int) {
	t.Helper()
	var te *providers.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if te.StatusCode != wantStatus {
		t.Fatalf("expected status %d, got %d", wantStatus, te.StatusCode)
	}
}
