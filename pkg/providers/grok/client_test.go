package grok

import (
	"context"
	"encoding/json"
	"testing"

	"lumos-hq/relay/internal/providertest"
	"lumos-hq/relay/pkg/providers"
)

const chatPath = "/v1/chat"

func TestGrokProvider_Complete(t *testing.T) {
	mock := providertest.NewMockServer()
	defer mock.Close()

	mock.SetResponse(chatPath, providertest.MockResponse{
		StatusCode: 200,
		Body:       providertest.MockGrokResponse("Hello from Grok!"),
	})

	provider, err := NewProvider(providertest.TestConfigWithURL("grok", "grok", mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer provider.Close()

	resp, err := provider.Complete(context.Background(), providertest.TestChatRequest("Hello"))
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Reply != "Hello from Grok!" {
		t.Errorf("expected reply %q, got %q", "Hello from Grok!", resp.Reply)
	}
	if resp.Provider != "grok" {
		t.Errorf("expected provider grok, got %q", resp.Provider)
	}
}

func TestGrokProvider_PayloadShape(t *testing.T) {
	mock := providertest.NewMockServer()
	defer mock.Close()

	mock.SetResponse(chatPath, providertest.MockResponse{
		StatusCode: 200,
		Body:       providertest.MockGrokResponse("ok"),
	})

	provider, err := NewProvider(providertest.TestConfigWithURL("grok", "grok", mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer provider.Close()

	req := providertest.TestChatRequest("how are you?",
		providertest.TestTurn(providers.RoleUser, "hi"),
		providertest.TestTurn(providers.RoleAssistant, "hello"),
	)
	if _, err := provider.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	var sent ChatRequest
	if err := json.Unmarshal(mock.LastRequestBody(), &sent); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}

	wantPrompt := "You are a test assistant.\nuser: hi\nassistant: hello\nuser: how are you?"
	if sent.Prompt != wantPrompt {
		t.Errorf("prompt mismatch:\nwant %q\ngot  %q", wantPrompt, sent.Prompt)
	}
	if sent.Model != DefaultModel {
		t.Errorf("expected model %q, got %q", DefaultModel, sent.Model)
	}
	if sent.MaxTokens != defaultMaxTokens {
		t.Errorf("expected max_tokens %d, got %d", defaultMaxTokens, sent.MaxTokens)
	}
	if sent.Temperature != defaultTemperature {
		t.Errorf("expected temperature %v, got %v", defaultTemperature, sent.Temperature)
	}
}

func TestGrokProvider_EmptyReply(t *testing.T) {
	mock := providertest.NewMockServer()
	defer mock.Close()

	mock.SetResponse(chatPath, providertest.MockResponse{
		StatusCode: 200,
		Body:       map[string]interface{}{"reply": ""},
	})

	provider, err := NewProvider(providertest.TestConfigWithURL("grok", "grok", mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer provider.Close()

	_, err = provider.Complete(context.Background(), providertest.TestChatRequest("Hello"))
	providertest.AssertKind(t, err, providers.KindRefusal)
}

func TestGrokProvider_MalformedBody(t *testing.T) {
	mock := providertest.NewMockServer()
	defer mock.Close()

	mock.SetResponse(chatPath, providertest.MockResponse{
		StatusCode: 200,
		Body:       "<html>gateway error</html>",
	})

	provider, err := NewProvider(providertest.TestConfigWithURL("grok", "grok", mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer provider.Close()

	_, err = provider.Complete(context.Background(), providertest.TestChatRequest("Hello"))
	providertest.AssertKind(t, err, providers.KindMalformedResponse)
}

func TestGrokProvider_TransportError(t *testing.T) {
	mock := providertest.NewMockServer()
	defer mock.Close()

	mock.SetResponse(chatPath, providertest.MockErrorResponse(500, "internal error"))

	provider, err := NewProvider(providertest.TestConfigWithURL("grok", "grok", mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer provider.Close()

	_, err = provider.Complete(context.Background(), providertest.TestChatRequest("Hello"))
	providertest.AssertTransportError(t, err, 500)

	if n := mock.RequestCount(); n != 1 {
		t.Errorf("expected exactly 1 request, got %d", n)
	}
}

func TestNewProvider_Validation(t *testing.T) {
	if _, err := NewProvider(providers.ProviderConfig{APIKey: "key"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := NewProvider(providers.ProviderConfig{Name: "grok"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
