// Package statuslog defines the order status history: an append-only
// audit trail of every status transition an order goes through.
//
// It serves two purposes:
//
//  1. Tracking: the storefront's order-tracking page renders the history
//     directly from this log.
//
//  2. Observability: each row carries the OTel trace_id of the request
//     that caused the transition, so a support engineer can jump from a
//     stuck order straight to the trace.
package statuslog

import "time"

// Entry is a single row in the order_status_log table: a point-in-time
// snapshot of an order's status.
type Entry struct {
	// OrderID joins the entry with business data.
	OrderID string

	// Status is the order status after this transition. Kept as a plain
	// string so this package stays free of order imports; the order
	// package owns the enum.
	Status string

	// Note is optional free text ("driver left the store", admin remark).
	Note string

	// TraceID is the W3C trace ID (32 hex chars) extracted from the
	// OpenTelemetry span that was active when this entry was written.
	TraceID string

	// SpanID pinpoints the exact request within the trace (16 hex chars).
	SpanID string

	// UpdatedAt is the wall-clock time of the transition.
	UpdatedAt time.Time
}
