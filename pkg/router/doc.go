// Package router implements the turn-taking protocol that ties sessions,
// the provider registry, and the system prompt together.
//
// A turn is: validate the user's message, snapshot the session history,
// call the selected provider once, and on success append the exchange to
// the session. Failed turns leave the session exactly as it was, so a
// provider outage never poisons the conversation state.
//
// Every outcome, success or failure, produces a user-visible reply
// string. Failure replies name the provider and never leak internals;
// the typed error travels alongside for logging and metrics.
package router
