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

// FanRewardEvent credits members for every fan-club ticket in an order.
// Redelivery of the same order credits again.
type FanRewardEvent struct {
	Rewards contract.RewardStore

	Timeout time.Duration
}

func (in FanRewardEvent) Handle(ctx context.Context, rec Record) error {
	ctx, cancel := withTimeout(ctx, in.Timeout)
	defer cancel()

	if headerValue(rec.Header, constant.HeaderHasFanClubMember) == "false" {
		slog.DebugContext(ctx, "fan reward event skipped, no fan club member")
		return nil
	}

	order, err := model.DecodeOrder(rec.Data)
	if err != nil {
		return err
	}

	tickets, err := order.RequireTickets()
	if err != nil {
		return err
	}

	awards, err := RewardAwards(tickets)
	if err != nil {
		return err
	}

	if len(awards) == 0 {
		return nil
	}

	ctx, span := otel.Tracer.Start(ctx, "FanRewardEvent.Handle")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	orderIdAttr := slog.String(constant.LogFieldOrderId, order.OrderID)

	slog.InfoContext(ctx, "fan reward event receive request", orderIdAttr, slog.Int("awards", len(awards)), traceIdAttr)

	if err := in.Rewards.AddRewardPoints(ctx, awards); err != nil {
		common.UtilSpanError(span, err)
		return errs.Dependency("add reward points", err)
	}

	slog.InfoContext(ctx, "fan reward event success", orderIdAttr, traceIdAttr)

	return nil
}

// RewardAwards returns one award per fan-club ticket, in ticket order.
func RewardAwards(tickets []model.TicketSelection) ([]model.RewardAward, error) {
	awards := make([]model.RewardAward, 0, len(tickets))
	for _, ticket := range tickets {
		if !ticket.IsFanClubMember {
			continue
		}

		fanClubID, err := ticket.RequireFanClubID()
		if err != nil {
			return nil, err
		}

		awards = append(awards, model.RewardAward{FanClubID: fanClubID, Points: constant.FanClubRewardPoints})
	}
	return awards, nil
}
