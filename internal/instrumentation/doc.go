// Package instrumentation provides OpenTelemetry metrics for the gateway.
//
// A Provider wires a Prometheus exporter into an OTel meter provider and
// exposes a Metrics recorder with three instrument families: MCP tool
// invocations, Gmail API operations, and OAuth token refreshes. When
// instrumentation is disabled (INSTRUMENTATION_ENABLED=false) all recorders
// degrade to no-ops, so callers never need to branch on the setting.
package instrumentation
