// Package providers defines the provider abstraction and shared HTTP
// plumbing for LLM backend adapters.
//
// The Provider interface normalizes backends with different wire formats
// behind a single Complete call. Concrete adapters live in subpackages
// (gemini, grok) and embed HTTPClient for connection pooling, timeouts,
// and uniform error mapping.
//
// # Error Taxonomy
//
// All failures surface as one of the typed errors in this package:
//
//   - UnknownProviderError: requested provider is not registered
//   - InvalidInputError: user input rejected before any request
//   - TransportError: network failure, timeout, or non-2xx status
//   - RefusalError: well-formed response with no usable reply
//   - MalformedResponseError: undecodable response body
//
// KindOf classifies any error into a stable label suitable for metrics
// and transcript records.
//
// Adapters never retry. A turn either succeeds with a reply or fails
// with exactly one typed error; the caller owns any retry policy.
package providers
