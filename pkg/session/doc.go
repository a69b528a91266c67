// Package session holds per-conversation state: the ordered turn history
// and the currently selected provider.
//
// A Store maps session IDs to Session values and creates sessions on
// first use with the configured default provider. Sessions and the store
// are safe for concurrent use.
//
// Two locks govern a session. The state lock protects reads and writes
// of the history and provider fields. The turn lock serializes whole
// turns: a caller holds it across the provider round trip so that two
// concurrent messages in the same session cannot interleave their
// history updates. Distinct sessions never contend with each other.
package session
