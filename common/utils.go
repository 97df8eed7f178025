package common

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/jetstream"
	"concert-ticket-pipeline/common/otel"
	"context"
	"encoding/json"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
)

func ExtractTraceIDFromCtx(ctx context.Context) slog.Attr {
	span := trace.SpanFromContext(ctx)
	traceId := ""

	if span != nil && span.SpanContext().HasTraceID() {
		traceId = span.SpanContext().TraceID().String()
	} else {
		traceId = ulid.Make().String()
	}

	return slog.Any(constant.LogFieldTraceId, traceId)
}

func UtilSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

// PublishMessage publishes body as JSON with the given headers.
func PublishMessage(ctx context.Context, publisher jetstream.Publisher, subject string, body any, header nats.Header) error {
	data, err := json.Marshal(body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message", ExtractTraceIDFromCtx(ctx), slog.Any(constant.LogFieldErr, err))
		return err
	}

	return PublishRaw(ctx, publisher, subject, data, header)
}

// PublishRaw publishes data as is. The current trace context is added to the headers.
func PublishRaw(ctx context.Context, publisher jetstream.Publisher, subject string, data []byte, header nats.Header) error {
	ctx, span := otel.Tracer.Start(ctx, "publishMessage")
	defer span.End()

	traceIdAttr := ExtractTraceIDFromCtx(ctx)

	msg := nats.NewMsg(subject)
	msg.Data = data
	for key, values := range header {
		msg.Header[key] = values
	}
	otel.InjectHeader(ctx, msg.Header)

	_, err := publisher.PublishMsg(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish message", traceIdAttr, slog.String(constant.LogFieldSubject, subject), slog.Any(constant.LogFieldErr, err))
		UtilSpanError(span, err)
		return err
	}

	return nil
}
