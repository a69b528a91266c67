package session

import (
	"sync"
	"time"

	"lumos-hq/relay/pkg/providers"
)

// Session is the state of one conversation: its turn history and the
// provider currently answering it.
//
// History grows only through AppendExchange, which records a completed
// user/assistant pair. Failed turns are never recorded, so the history
// always alternates user, assistant, user, assistant.
type Session struct {
	// ID is the transport-level conversation identifier.
	ID string

	// turnMu serializes complete turns. It is held across the provider
	// round trip via Lock/Unlock so concurrent messages in the same
	// session are processed one at a time.
	turnMu sync.Mutex

	// mu protects the fields below.
	mu       sync.RWMutex
	history  []providers.Turn
	provider string
	created  time.Time
}

func newSession(id, provider string) *Session {
	return &Session{
		ID:       id,
		provider: provider,
		created:  time.Now(),
	}
}

// Lock acquires the session's turn lock. Callers hold it for the full
// duration of a turn, including the provider call.
func (s *Session) Lock() {
	s.turnMu.Lock()
}

// Unlock releases the session's turn lock.
func (s *Session) Unlock() {
	s.turnMu.Unlock()
}

// History returns a copy of the session's turn history, oldest first.
func (s *Session) History() []providers.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]providers.Turn(nil), s.history...)
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Provider returns the session's currently selected provider name.
func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// SetProvider switches the session to a different provider. The history
// is untouched; the conversation continues where it left off.
func (s *Session) SetProvider(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = name
}

// AppendTurn appends a single turn. Exactly-once append per logical
// turn is the caller's responsibility.
func (s *Session) AppendTurn(t providers.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, t)
}

// AppendExchange records one completed turn: the user's message and the
// assistant's reply, in that order. It is called only after a provider
// call succeeds.
func (s *Session) AppendExchange(userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		providers.Turn{Role: providers.RoleUser, Content: userText},
		providers.Turn{Role: providers.RoleAssistant, Content: assistantText},
	)
}

// ClearHistory drops all recorded turns. The selected provider is kept.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// CreatedAt returns when the session was first seen.
func (s *Session) CreatedAt() time.Time {
	return s.created
}
