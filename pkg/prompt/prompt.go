// Package prompt supplies the system prompt that precedes every
// provider payload.
//
// A Source yields the current prompt text. Static wraps a fixed string;
// FileSource reads the prompt from a file and hot-reloads it on change,
// so the persona can be edited without restarting the service.
package prompt

// Source yields the current system prompt. Implementations must be safe
// for concurrent use; the router reads the prompt on every turn.
type Source interface {
	System() string
}

// Static is a fixed system prompt.
type Static string

func (s Static) System() string {
	return string(s)
}
