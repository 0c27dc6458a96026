// Package server holds the runtime plumbing around the MCP server: the
// shared ServerContext with the lazily built Gmail adapter, a dedicated
// Prometheus metrics server, and health check endpoints.
package server
