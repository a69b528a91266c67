// Relay is a Telegram bot that routes conversations to LLM providers.
//
// It connects a Telegram chat to a configurable set of model backends,
// providing:
//   - Per-chat conversation history and turn-taking
//   - Runtime model switching with /model
//   - Long-polling or webhook update delivery
//   - Transcript audit logging with scheduled retention pruning
//   - Prometheus metrics and structured logging
//
// Usage:
//
//	# Start the bot with default configuration
//	relay run
//
//	# Start with a custom configuration file
//	relay run --config /path/to/config.yaml
//
//	# Show version information
//	relay version
//
//	# Validate a configuration file
//	relay validate
package main

func main() {
	Execute()
}
