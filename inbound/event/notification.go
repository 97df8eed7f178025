package event

import (
	"concert-ticket-pipeline/common"
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/common/jetstream"
	"concert-ticket-pipeline/common/otel"
	"concert-ticket-pipeline/model"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type NotificationEvent struct {
	Publisher jetstream.Publisher
	Subject   string

	Timeout time.Duration
}

func (in NotificationEvent) Handle(ctx context.Context, rec Record) error {
	ctx, cancel := withTimeout(ctx, in.Timeout)
	defer cancel()

	order, err := model.DecodeOrder(rec.Data)
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer.Start(ctx, "NotificationEvent.Handle")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	orderIdAttr := slog.String(constant.LogFieldOrderId, order.OrderID)

	slog.InfoContext(ctx, "notification event receive request", orderIdAttr, traceIdAttr)

	message := RenderConfirmation(order)
	if err := common.PublishRaw(ctx, in.Publisher, in.Subject, []byte(message), nil); err != nil {
		common.UtilSpanError(span, err)
		return errs.Dependency("publish notification", err)
	}

	slog.InfoContext(ctx, "notification event success", orderIdAttr, traceIdAttr)

	return nil
}

// RenderConfirmation builds the customer confirmation text with the amount
// charged. Absent fields fall back to placeholders, so any decodable order
// renders.
func RenderConfirmation(order model.Order) string {
	var tickets strings.Builder
	for _, ticket := range order.Tickets {
		fmt.Fprintf(&tickets, constant.NotificationTicketLine,
			ticket.SeatClass.Or(constant.UnknownValue),
			ticket.SeatSection.Or(constant.UnknownValue),
			ticket.SeatRow.Or(constant.UnknownValue),
			ticket.SeatNumber.Or(constant.UnknownValue),
		)
	}

	return fmt.Sprintf(constant.NotificationTemplate,
		order.ConcertName.Or(constant.DefaultConcertName),
		order.ConcertDate.Or(constant.DefaultConcertDate),
		tickets.String(),
		order.ChargeAmount(order.TotalAmount.Or(0)),
	)
}
