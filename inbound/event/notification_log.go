package event

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/model"
	"context"
	"log/slog"
	"slices"
	"strings"
)

// NotificationLogEvent is the terminal sink of the notification topic. It
// never fails a delivery.
type NotificationLogEvent struct{}

func (in NotificationLogEvent) Handle(ctx context.Context, rec Record) error {
	delivery := DecodeDelivery(rec)

	keys := make([]string, 0, len(delivery.Attributes))
	for key := range delivery.Attributes {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]any, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.String(key, delivery.Attributes[key]))
	}

	slog.InfoContext(ctx, "notification received",
		slog.String(constant.LogFieldSubject, delivery.Subject.Or(constant.NoSubject)),
		slog.Group("attributes", attrs...),
		slog.String("message", delivery.Message),
	)
	slog.InfoContext(ctx, strings.Repeat("-", constant.NotificationLogSeparatorWidth))

	return nil
}

// DecodeDelivery splits the subject header out of the remaining attributes.
// Multi-valued headers are joined with commas.
func DecodeDelivery(rec Record) model.NotificationDelivery {
	delivery := model.NotificationDelivery{
		Attributes: make(map[string]string, len(rec.Header)),
		Message:    string(rec.Data),
	}

	for key, values := range rec.Header {
		if len(values) == 0 {
			continue
		}

		if key == constant.HeaderSubject {
			delivery.Subject = model.Some(values[0])
			continue
		}

		delivery.Attributes[key] = strings.Join(values, ",")
	}

	return delivery
}
