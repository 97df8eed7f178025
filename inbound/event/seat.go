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

type SeatInventoryEvent struct {
	Seats contract.SeatInventoryStore

	Timeout time.Duration
}

func (in SeatInventoryEvent) Handle(ctx context.Context, rec Record) error {
	ctx, cancel := withTimeout(ctx, in.Timeout)
	defer cancel()

	order, err := model.DecodeOrder(rec.Data)
	if err != nil {
		return err
	}

	tickets, err := order.RequireTickets()
	if err != nil {
		return err
	}

	concertID, err := order.RequireConcertID()
	if err != nil {
		return err
	}

	seatIDs := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		seatID, err := ticket.SeatID()
		if err != nil {
			return err
		}
		seatIDs = append(seatIDs, seatID)
	}

	ctx, span := otel.Tracer.Start(ctx, "SeatInventoryEvent.Handle")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	orderIdAttr := slog.String(constant.LogFieldOrderId, order.OrderID)

	slog.InfoContext(ctx, "seat inventory event receive request", orderIdAttr, slog.Any("seat_ids", seatIDs), traceIdAttr)

	if err := in.Seats.MarkUnavailable(ctx, concertID, seatIDs); err != nil {
		common.UtilSpanError(span, err)
		return errs.Dependency("mark seats unavailable", err)
	}

	slog.InfoContext(ctx, "seat inventory event success", orderIdAttr, traceIdAttr)

	return nil
}
