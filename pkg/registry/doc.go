// Package registry maintains the fixed mapping from provider names to
// provider instances.
//
// The registry is built once at startup from configuration and is
// immutable afterwards, so lookups need no locking. Resolving a name
// that is not registered returns an UnknownProviderError carrying the
// known names; the registry's contents never change because of a
// failed lookup.
package registry
