package otel

import (
	"context"

	"github.com/nats-io/nats.go"
	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// InjectHeader writes the span context of ctx into message headers.
func InjectHeader(ctx context.Context, header nats.Header) {
	gootel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
}

// ExtractHeader continues the trace carried by message headers, if any.
func ExtractHeader(ctx context.Context, header nats.Header) context.Context {
	if len(header) == 0 {
		return ctx
	}
	return gootel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(header))
}
