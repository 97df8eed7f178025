package payment

import (
	"concert-ticket-pipeline/common/constant"
	"context"
	"log/slog"
)

// SimulatedGateway approves every charge. No external call is made.
type SimulatedGateway struct{}

func (SimulatedGateway) Authorize(ctx context.Context, orderID string, amount float64) (bool, error) {
	slog.DebugContext(ctx, "simulated payment authorized", slog.String(constant.LogFieldOrderId, orderID), slog.Float64("amount", amount))
	return true, nil
}
