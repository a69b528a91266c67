// Package telemetry provides observability for Relay.
//
// # Components
//
//   - metrics: Prometheus metrics collection for turns, latency,
//     errors, sessions, and outbound chunks
//
// Structured logging is configured at startup through log/slog; every
// component logs through slog.Default with a "component" attribute.
//
// # Usage
//
//	collector := metrics.NewCollector(nil)
//	router.New(reg, store, prompts, router.WithObserver(collector.Observer()))
//	http.Handle("/metrics", collector.Handler())
package telemetry
