package event

import (
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/model"
	"concert-ticket-pipeline/outbound/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SeatInventoryEventTestSuite struct {
	suite.Suite
	seats     *memory.SeatInventoryStore
	seatEvent SeatInventoryEvent
}

func (s *SeatInventoryEventTestSuite) SetupTest() {
	s.seats = memory.NewSeatInventoryStore()
	s.seatEvent = SeatInventoryEvent{Seats: s.seats, Timeout: 10 * time.Second}
}

func TestSeatInventoryEventTestSuite(t *testing.T) {
	suite.Run(t, new(SeatInventoryEventTestSuite))
}

func (s *SeatInventoryEventTestSuite) TestHandle() {
	order := erasOrder()
	order.Tickets = append(order.Tickets, model.TicketSelection{
		SeatClass:   model.Seat("VIP"),
		SeatSection: model.Seat("VIP"),
		SeatRow:     model.Seat("12"),
		SeatNumber:  model.Seat("5"),
	})
	rec := orderRecord(s.T(), "order-events", order)

	for range 2 {
		s.Require().NoError(s.seatEvent.Handle(context.Background(), rec))
	}

	for _, seatID := range []string{"A-1-5", "VIP-12-5"} {
		available, known := s.seats.IsAvailable("C1", seatID)
		s.True(known, seatID)
		s.False(available, seatID)
	}
	s.Equal(2, s.seats.Len())
}

func (s *SeatInventoryEventTestSuite) TestHandleNumericSeatFields() {
	rec := Record{
		Subject: "order-events",
		Data:    []byte(`{"orderId":"order-9","concertId":"C1","tickets":[{"seatSection":"VIP","seatRow":12,"seatNumber":5}],"totalAmount":100}`),
	}

	s.Require().NoError(s.seatEvent.Handle(context.Background(), rec))

	available, known := s.seats.IsAvailable("C1", "VIP-12-5")
	s.True(known)
	s.False(available)
}

func (s *SeatInventoryEventTestSuite) TestHandleMalformed() {
	noConcert := erasOrder()
	noConcert.ConcertID = model.Optional[string]{}

	noRow := erasOrder()
	noRow.Tickets[0].SeatRow = model.Optional[model.SeatValue]{}

	testCases := []struct {
		name  string
		order model.Order
		field string
	}{
		{name: "missing concert id", order: noConcert, field: "concertId"},
		{name: "missing seat row", order: noRow, field: "seatRow"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.seatEvent.Handle(context.Background(), orderRecord(s.T(), "order-events", tc.order))
			s.Require().Error(err)
			s.True(errs.IsMalformed(err))
			s.Contains(err.Error(), tc.field)
			s.Equal(0, s.seats.Len())
		})
	}
}

func (s *SeatInventoryEventTestSuite) TestHandleStoreFailure() {
	s.seatEvent.Seats = failingSeatStore{}

	err := s.seatEvent.Handle(context.Background(), orderRecord(s.T(), "order-events", erasOrder()))
	s.Require().Error(err)
	s.True(errs.IsDependency(err))
}
