package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lumos-hq/relay/pkg/prompt"
	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/registry"
	"lumos-hq/relay/pkg/session"
)

// Router coordinates turns between sessions and providers.
type Router struct {
	registry  *registry.Registry
	store     *session.Store
	prompts   prompt.Source
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithObserver registers an observer notified after every turn.
func WithObserver(obs Observer) Option {
	return func(r *Router) {
		if obs != nil {
			r.observers = append(r.observers, obs)
		}
	}
}

// New creates a router over the given registry, session store, and
// system prompt source.
func New(reg *registry.Registry, store *session.Store, prompts prompt.Source, opts ...Option) *Router {
	r := &Router{
		registry: reg,
		store:    store,
		prompts:  prompts,
		logger:   slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleTurn runs one complete turn for the session: validate input,
// call the session's provider with the history so far, and record the
// exchange on success.
//
// The returned string is always safe to show the user. On failure it is
// a provider-named apology, err carries the typed cause, and the session
// history is left untouched.
func (r *Router) HandleTurn(ctx context.Context, sessionID, userText string) (string, error) {
	if strings.TrimSpace(userText) == "" {
		err := &providers.InvalidInputError{Field: "text", Message: "message text is empty"}
		return "Please send some text.", err
	}

	sess := r.store.GetOrCreate(sessionID)

	// One turn at a time per session. The lock spans the provider call
	// so a slow reply cannot interleave with the next message.
	sess.Lock()
	defer sess.Unlock()

	providerName := sess.Provider()
	provider, err := r.registry.Resolve(providerName)
	if err != nil {
		// Session points at a provider that is no longer registered.
		r.logger.Error("session provider not in registry",
			"session_id", sessionID,
			"provider", providerName,
		)
		r.notify(TurnEvent{SessionID: sessionID, Provider: providerName, Err: err})
		return fmt.Sprintf("Sorry, %s is not available right now.", providerName), err
	}

	req := &providers.ChatRequest{
		SystemPrompt: r.prompts.System(),
		History:      sess.History(),
		UserText:     userText,
	}

	turnID := uuid.New().String()
	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	latency := time.Since(start)

	if err != nil {
		r.logger.Warn("turn failed",
			"turn_id", turnID,
			"session_id", sessionID,
			"provider", providerName,
			"kind", string(providers.KindOf(err)),
			"latency", latency,
			"error", err,
		)
		r.notify(TurnEvent{
			SessionID: sessionID,
			Provider:  providerName,
			Latency:   latency,
			Err:       err,
		})
		return failureReply(providerName, err), err
	}

	sess.AppendExchange(userText, resp.Reply)

	r.logger.Info("turn completed",
		"turn_id", turnID,
		"session_id", sessionID,
		"provider", providerName,
		"latency", latency,
		"history_turns", sess.Len(),
	)
	r.notify(TurnEvent{
		SessionID: sessionID,
		Provider:  providerName,
		Latency:   latency,
		Reply:     resp.Reply,
	})

	return resp.Reply, nil
}

// failureReply maps a turn error to the text shown to the user. The
// provider is named so the user knows which backend to blame; internals
// never appear.
func failureReply(provider string, err error) string {
	switch providers.KindOf(err) {
	case providers.KindRefusal:
		return fmt.Sprintf("Sorry, %s refused to answer that one. Try rephrasing.", provider)
	case providers.KindMalformedResponse:
		return fmt.Sprintf("Sorry, %s returned something I could not understand. Try again.", provider)
	case providers.KindInvalidInput:
		return "Please send some text."
	default:
		return fmt.Sprintf("Sorry, %s is unavailable right now, try again in a moment.", provider)
	}
}

// SwitchProvider points the session at the named provider. The session's
// history is kept; subsequent turns carry it to the new backend. Unknown
// names change nothing and return a reply listing the valid choices.
func (r *Router) SwitchProvider(sessionID, name string) (string, error) {
	if !r.registry.Has(name) {
		err := &providers.UnknownProviderError{Name: name, Known: r.registry.Names()}
		return fmt.Sprintf("Unknown model %q. Available: %s.", name, strings.Join(r.registry.Names(), ", ")), err
	}
	if err := r.store.SetProvider(sessionID, name); err != nil {
		return fmt.Sprintf("Unknown model %q. Available: %s.", name, strings.Join(r.registry.Names(), ", ")), err
	}
	return fmt.Sprintf("Model switched to %s.", name), nil
}

// CurrentProvider returns the provider answering the session's turns.
func (r *Router) CurrentProvider(sessionID string) string {
	return r.store.CurrentProvider(sessionID)
}

// AvailableProviders returns the registered provider names in sorted order.
func (r *Router) AvailableProviders() []string {
	return r.registry.Names()
}

// Start initializes the session for a fresh conversation: the default
// provider is selected and any prior history is dropped.
func (r *Router) Start(sessionID string) string {
	sess := r.store.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.SetProvider(r.registry.DefaultName())
	sess.ClearHistory()

	r.logger.Info("session started",
		"session_id", sessionID,
		"provider", r.registry.DefaultName(),
	)
	return fmt.Sprintf("Hi! I'm Relay. You're talking to %s. Use /model to switch models, /help for commands.", r.registry.DefaultName())
}

// ResetSession drops the session's history, keeping its provider.
func (r *Router) ResetSession(sessionID string) string {
	r.store.Reset(sessionID)
	r.logger.Info("session reset", "session_id", sessionID)
	return "Conversation cleared. Let's start fresh."
}

func (r *Router) notify(ev TurnEvent) {
	for _, obs := range r.observers {
		obs.ObserveTurn(ev)
	}
}
