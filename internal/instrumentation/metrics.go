package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrTool      = "tool"
	attrOperation = "operation"
	attrStatus    = "status"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records the gateway's observability metrics: tool invocations at
// the dispatch boundary, Gmail API operations at the adapter boundary, and
// token refresh exchanges at the session boundary.
type Metrics struct {
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	gmailOperationsTotal   metric.Int64Counter
	gmailOperationDuration metric.Float64Histogram

	tokenRefreshTotal metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.gmailOperationsTotal, err = meter.Int64Counter(
		"gmail_api_operations_total",
		metric.WithDescription("Total number of Gmail API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_operations_total counter: %w", err)
	}

	m.gmailOperationDuration, err = meter.Float64Histogram(
		"gmail_api_operation_duration_seconds",
		metric.WithDescription("Gmail API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_operation_duration_seconds histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh exchanges"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records one dispatch through the tool catalog.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGmailOperation records one adapter-level provider operation.
func (m *Metrics) RecordGmailOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.gmailOperationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.gmailOperationsTotal.Add(ctx, 1, attrs)
	m.gmailOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordTokenRefresh records one successful token refresh exchange.
func (m *Metrics) RecordTokenRefresh(ctx context.Context) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1)
}
