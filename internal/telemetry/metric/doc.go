// Package metric provides Prometheus metrics for yggauth.
//
//   - prometheus.go: registry, request and auth counters, /metrics handler
//   - collector.go: scrape-time collector for store sizes
//
// Metrics are exposed at /metrics in Prometheus text format.
package metric
