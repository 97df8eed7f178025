package contract

import (
	"concert-ticket-pipeline/model"
	"context"
)

// OrderStore persists final order records keyed by order id. Saving the same
// order twice leaves one record.
type OrderStore interface {
	SaveOrder(ctx context.Context, order model.Order) error
}

// SeatInventoryStore flags seats of a concert as sold. The write is an
// unconditional set, safe to repeat.
type SeatInventoryStore interface {
	MarkUnavailable(ctx context.Context, concertID string, seatIDs []string) error
}

// RewardStore credits fan-club members with additive increments.
type RewardStore interface {
	AddRewardPoints(ctx context.Context, awards []model.RewardAward) error
}

// PaymentGateway authorizes the charge for an order.
type PaymentGateway interface {
	Authorize(ctx context.Context, orderID string, amount float64) (bool, error)
}
