package session

import (
	"log/slog"
	"sync"

	"lumos-hq/relay/pkg/providers"
)

// Store is a thread-safe collection of sessions keyed by ID.
// Sessions are created on first use with the store's default provider.
type Store struct {
	mu              sync.RWMutex
	sessions        map[string]*Session
	defaultProvider string

	// validate reports whether a provider name is known. Nil disables
	// validation.
	validate func(name string) bool
}

// NewStore creates a session store. defaultProvider is assigned to every
// new session; validate is consulted by SetProvider and may be nil.
func NewStore(defaultProvider string, validate func(name string) bool) *Store {
	return &Store{
		sessions:        make(map[string]*Session),
		defaultProvider: defaultProvider,
		validate:        validate,
	}
}

// GetOrCreate returns the session for id, creating it with the default
// provider if it does not exist.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// Re-check under the write lock; another goroutine may have won.
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = newSession(id, st.defaultProvider)
	st.sessions[id] = s

	slog.Debug("session created",
		"session_id", id,
		"provider", st.defaultProvider,
	)
	return s
}

// Get returns the session for id, or nil when it has never been seen.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// CurrentProvider returns the provider selected for id. Unseen sessions
// report the default provider; asking does not create a session.
func (st *Store) CurrentProvider(id string) string {
	if s := st.Get(id); s != nil {
		return s.Provider()
	}
	return st.defaultProvider
}

// SetProvider switches the session for id to the named provider,
// creating the session if needed. An unknown name leaves the session
// unchanged and returns an UnknownProviderError.
func (st *Store) SetProvider(id, name string) error {
	if st.validate != nil && !st.validate(name) {
		return &providers.UnknownProviderError{Name: name}
	}
	st.GetOrCreate(id).SetProvider(name)

	slog.Info("session provider switched",
		"session_id", id,
		"provider", name,
	)
	return nil
}

// Reset clears the history of the session for id. The selected provider
// is kept. Resetting an unseen session is a no-op.
func (st *Store) Reset(id string) {
	if s := st.Get(id); s != nil {
		s.ClearHistory()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
