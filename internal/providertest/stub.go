package providertest

import (
	"context"
	"sync"
	"time"

	"lumos-hq/relay/pkg/providers"
)

// StubProvider is an in-memory Provider implementation for router and
// transport tests. It returns a fixed reply or a fixed error and records
// every request it receives.
type StubProvider struct {
	ProviderName string
	Reply        string
	Err          error
	Delay        time.Duration

	mu       sync.Mutex
	requests []*providers.ChatRequest
}

// NewStubProvider creates a stub that replies with the given text.
func NewStubProvider(name, reply string) *StubProvider {
	return &StubProvider{
		ProviderName: name,
		Reply:        reply,
	}
}

// NewFailingProvider creates a stub that always fails with err.
func NewFailingProvider(name string, err error) *StubProvider {
	return &StubProvider{
		ProviderName: name,
		Err:          err,
	}
}

func (s *StubProvider) Complete(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResponse, error) {
	s.mu.Lock()
	copied := *req
	copied.History = append([]providers.Turn(nil), req.History...)
	s.requests = append(s.requests, &copied)
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &providers.TransportError{
				Provider: s.ProviderName,
				Message:  ctx.Err().Error(),
				Cause:    ctx.Err(),
			}
		case <-time.After(s.Delay):
		}
	}

	if s.Err != nil {
		return nil, s.Err
	}
	return &providers.ChatResponse{
		Provider: s.ProviderName,
		Reply:    s.Reply,
	}, nil
}

func (s *StubProvider) Name() string {
	return s.ProviderName
}

func (s *StubProvider) Type() string {
	return "stub"
}

func (s *StubProvider) Config() providers.ProviderConfig {
	return providers.ProviderConfig{Name: s.ProviderName, Type: "stub"}
}

func (s *StubProvider) Close() error {
	return nil
}

// Requests returns a copy of every request the stub has received.
func (s *StubProvider) Requests() []*providers.ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*providers.ChatRequest(nil), s.requests...)
}

// CallCount returns how many requests the stub has received.
func (s *StubProvider) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
