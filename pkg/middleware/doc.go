// Package middleware provides standard net/http middleware for the
// request core: Prometheus metrics and OpenTelemetry tracing, labeled
// by request mode (document, data, manifest).
package middleware
