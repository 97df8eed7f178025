package event

import (
	"concert-ticket-pipeline/common"
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/contract"
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/common/otel"
	"concert-ticket-pipeline/model"
	"context"
	"log/slog"
	"time"
)

type PaymentEvent struct {
	Orders  contract.OrderStore
	Gateway contract.PaymentGateway

	Timeout time.Duration
}

func (in PaymentEvent) Handle(ctx context.Context, rec Record) error {
	ctx, cancel := withTimeout(ctx, in.Timeout)
	defer cancel()

	order, err := model.DecodeOrder(rec.Data)
	if err != nil {
		return err
	}

	if _, err := order.RequireTickets(); err != nil {
		return err
	}

	total, err := order.RequireTotalAmount()
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer.Start(ctx, "PaymentEvent.Handle")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	orderIdAttr := slog.String(constant.LogFieldOrderId, order.OrderID)

	slog.InfoContext(ctx, "payment event receive request", orderIdAttr, traceIdAttr)

	total = order.ChargeAmount(total)
	order.TotalAmount = model.Some(total)

	authorized, err := in.Gateway.Authorize(ctx, order.OrderID, total)
	if err != nil {
		common.UtilSpanError(span, err)
		return errs.Dependency("authorize payment", err)
	}

	order.PaymentStatus = model.PaymentStatusFailed
	if authorized {
		order.PaymentStatus = model.PaymentStatusCompleted
	}

	if err := in.Orders.SaveOrder(ctx, order); err != nil {
		common.UtilSpanError(span, err)
		return errs.Dependency("save order", err)
	}

	slog.InfoContext(ctx, "payment event success",
		orderIdAttr,
		slog.String("payment_status", string(order.PaymentStatus)),
		slog.Float64("total_amount", total),
		traceIdAttr,
	)

	return nil
}
