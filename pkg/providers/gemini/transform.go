package gemini

import (
	"lumos-hq/relay/pkg/providers"
)

// Gemini API request/response types

// GenerateRequest represents a generateContent request.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Content holds an ordered list of parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a single text fragment.
type Part struct {
	Text string `json:"text"`
}

// GenerateResponse represents a generateContent response.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

// Candidate is one generated completion.
type Candidate struct {
	Content Content `json:"content"`
}

// APIError is the error object Gemini embeds in response bodies.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// transformRequest builds the generateContent payload from a
// provider-agnostic request. The system prompt comes first, followed by
// each history turn's text in order, then the new user message. Roles
// are dropped; the API receives a flat sequence of parts.
func transformRequest(req *providers.ChatRequest) *GenerateRequest {
	parts := make([]Part, 0, len(req.History)+2)

	if req.SystemPrompt != "" {
		parts = append(parts, Part{Text: req.SystemPrompt})
	}
	for _, turn := range req.History {
		parts = append(parts, Part{Text: turn.Content})
	}
	parts = append(parts, Part{Text: req.UserText})

	return &GenerateRequest{
		Contents: []Content{{Parts: parts}},
	}
}

// extractReply pulls the reply text out of a decoded response. It returns
// false when no candidate text is present.
func extractReply(resp *GenerateResponse) (string, bool) {
	if len(resp.Candidates) == 0 {
		return "", false
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", false
	}
	return parts[0].Text, true
}
