// Package transcript records a write-only audit trail of turns.
//
// Each completed or failed turn produces one Record: which session,
// which provider, how long the call took, and how it ended. The router
// never reads transcripts back; conversation state lives entirely in
// the session store. Transcripts exist for operators, not for the bot.
//
// Records are written asynchronously through a Recorder so a slow disk
// never stalls a turn. Storage backends are pluggable; SQLite is the
// production backend and the in-memory store backs tests.
package transcript

import (
	"context"
	"fmt"
	"time"
)

// Outcome values for a recorded turn.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Record is one turn's audit entry.
type Record struct {
	// ID is a generated unique identifier.
	ID string

	// SessionID is the conversation the turn belongs to.
	SessionID string

	// Provider is the backend that handled (or failed) the turn.
	Provider string

	// Outcome is OutcomeOK or OutcomeError.
	Outcome string

	// ErrorKind is the error classification for failed turns, empty on
	// success.
	ErrorKind string

	// LatencyMS is the provider round-trip time in milliseconds.
	LatencyMS int64

	// ReplyPreview is a truncated copy of the reply text. Empty on
	// failure.
	ReplyPreview string

	// CreatedAt is when the turn finished.
	CreatedAt time.Time
}

// Storage persists transcript records.
type Storage interface {
	// Store writes one record.
	Store(ctx context.Context, record *Record) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Prune deletes records created before cutoff and returns how many
	// were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases the backend.
	Close() error
}

// StorageError wraps a backend failure with the backend and operation
// that produced it.
type StorageError struct {
	Backend string
	Op      string
	Cause   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("transcript storage %s: %s failed: %v", e.Backend, e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
