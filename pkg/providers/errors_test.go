package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUnknownProviderError(t *testing.T) {
	err := &UnknownProviderError{Name: "claude", Known: []string{"gemini", "grok"}}

	msg := err.Error()
	if !strings.Contains(msg, "claude") {
		t.Errorf("expected message to contain provider name, got %q", msg)
	}
	if !strings.Contains(msg, "gemini, grok") {
		t.Errorf("expected message to list known providers, got %q", msg)
	}

	bare := &UnknownProviderError{Name: "claude"}
	if strings.Contains(bare.Error(), "known") {
		t.Errorf("expected no known list in message, got %q", bare.Error())
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Provider: "gemini", Message: cause.Error(), Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestTransportError_Timeout(t *testing.T) {
	tests := []struct {
		name string
		err  *TransportError
		want bool
	}{
		{
			name: "deadline exceeded",
			err:  &TransportError{Provider: "gemini", Cause: context.DeadlineExceeded},
			want: true,
		},
		{
			name: "wrapped deadline",
			err:  &TransportError{Provider: "gemini", Cause: fmt.Errorf("request: %w", context.DeadlineExceeded)},
			want: true,
		},
		{
			name: "connection refused",
			err:  &TransportError{Provider: "gemini", Cause: errors.New("connection refused")},
			want: false,
		},
		{
			name: "no cause",
			err:  &TransportError{Provider: "gemini", StatusCode: 502},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMalformedResponseError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedResponseError{Provider: "grok", Raw: "{", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "grok") {
		t.Errorf("expected provider name in message, got %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"unknown provider", &UnknownProviderError{Name: "x"}, KindUnknownProvider},
		{"invalid input", &InvalidInputError{Message: "empty"}, KindInvalidInput},
		{"transport", &TransportError{Provider: "gemini"}, KindTransport},
		{"refusal", &RefusalError{Provider: "gemini"}, KindRefusal},
		{"malformed", &MalformedResponseError{Provider: "grok"}, KindMalformedResponse},
		{"wrapped transport", fmt.Errorf("turn failed: %w", &TransportError{Provider: "grok"}), KindTransport},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
