package statuslog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars).
	// Empty string if no active span is found in the context.
	TraceID string

	// SpanID is the W3C span ID (16 lowercase hex chars).
	SpanID string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and
// returns its trace_id and span_id as hex strings. If the context
// carries no active span (e.g. in unit tests), both fields are empty
// strings and the caller proceeds without correlation.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	if !sc.IsValid() {
		return TraceInfo{}
	}

	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry with the trace info automatically extracted
// from ctx.
//
//	entry := statuslog.NewEntry(ctx, orderID, string(order.StatusConfirmed), "")
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, orderID string, status, note string) *Entry {
	ti := ExtractTraceInfo(ctx)

	return &Entry{
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		UpdatedAt: time.Now().UTC(),
	}
}
