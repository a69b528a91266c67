// Package grok implements the Grok provider adapter.
//
// This package provides an implementation of the providers.Provider
// interface for Grok's chat endpoint.
//
// # Request Transformation
//
// Grok takes a single prompt string. The adapter renders the system
// prompt, each history turn as a "role: content" line, and finally the
// new user message prefixed with "user: ". The whole conversation
// travels as one flat string.
//
// # Response Transformation
//
// The reply is read from the top-level "reply" field. A 2xx response
// with an empty reply is treated as a refusal.
package grok
