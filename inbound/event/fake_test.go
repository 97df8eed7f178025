package event

import (
	"concert-ticket-pipeline/model"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
)

var errStoreDown = errors.New("store down")

type failingOrderStore struct{}

func (failingOrderStore) SaveOrder(context.Context, model.Order) error { return errStoreDown }

type failingSeatStore struct{}

func (failingSeatStore) MarkUnavailable(context.Context, string, []string) error {
	return errStoreDown
}

type failingRewardStore struct{}

func (failingRewardStore) AddRewardPoints(context.Context, []model.RewardAward) error {
	return errStoreDown
}

type decliningGateway struct{}

func (decliningGateway) Authorize(context.Context, string, float64) (bool, error) { return false, nil }

type unreachableGateway struct{}

func (unreachableGateway) Authorize(context.Context, string, float64) (bool, error) {
	return false, errStoreDown
}

func orderRecord(t *testing.T, subject string, order model.Order) Record {
	t.Helper()

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}

	header := nats.Header{}
	header.Set("hasFanClubMember", "false")
	if order.HasFanClubMember() {
		header.Set("hasFanClubMember", "true")
	}

	return Record{Subject: subject, Header: header, Data: data}
}

func erasOrder() model.Order {
	return model.Order{
		OrderID:           "order-1",
		PurchaseTimestamp: "2025-06-01T10:00:00.000000Z",
		ConcertID:         model.Some("C1"),
		ConcertName:       model.Some("Eras"),
		ConcertDate:       model.Some("2025-07-01"),
		Tickets: []model.TicketSelection{
			{
				SeatClass:       model.Seat("VIP"),
				SeatSection:     model.Seat("A"),
				SeatRow:         model.Seat("1"),
				SeatNumber:      model.Seat("5"),
				IsFanClubMember: true,
				FanClubID:       "fan-1",
			},
		},
		TotalAmount: model.Some(100.0),
	}
}
