// Package metrics counts detect requests and cache outcomes.
//
// Counters is the in-process source of truth behind the /api/stats endpoint:
// lock-free atomics plus a start time, read through Snapshot. Collector
// exposes the same numbers to Prometheus on a private registry, together with
// HTTP RED metrics recorded by Collector.Middleware and per client type
// counts. The Prometheus handler is meant to be served on a separate listener.
package metrics
