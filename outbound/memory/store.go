package memory

import (
	"concert-ticket-pipeline/model"
	"context"
	"sync"
)

// OrderStore is an in-process OrderStore with the same overwrite semantics as
// the Postgres one.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]model.Order)}
}

func (s *OrderStore) SaveOrder(_ context.Context, order model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.Tickets != nil {
		tickets := make([]model.TicketSelection, len(order.Tickets))
		copy(tickets, order.Tickets)
		order.Tickets = tickets
	}

	s.orders[order.OrderID] = order
	return nil
}

func (s *OrderStore) FindOrder(orderID string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	return order, ok
}

func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}

type seatKey struct {
	concertID string
	seatID    string
}

type SeatInventoryStore struct {
	mu    sync.RWMutex
	seats map[seatKey]bool
}

func NewSeatInventoryStore() *SeatInventoryStore {
	return &SeatInventoryStore{seats: make(map[seatKey]bool)}
}

func (s *SeatInventoryStore) MarkUnavailable(_ context.Context, concertID string, seatIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seatID := range seatIDs {
		s.seats[seatKey{concertID: concertID, seatID: seatID}] = false
	}
	return nil
}

// IsAvailable reports the stored flag and whether the seat has a row at all.
func (s *SeatInventoryStore) IsAvailable(concertID, seatID string) (available bool, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available, known = s.seats[seatKey{concertID: concertID, seatID: seatID}]
	return available, known
}

func (s *SeatInventoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.seats)
}

type RewardStore struct {
	mu     sync.Mutex
	points map[string]int64
}

func NewRewardStore() *RewardStore {
	return &RewardStore{points: make(map[string]int64)}
}

func (s *RewardStore) AddRewardPoints(_ context.Context, awards []model.RewardAward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, award := range awards {
		s.points[award.FanClubID] += award.Points
	}
	return nil
}

func (s *RewardStore) RewardPoints(fanClubID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.points[fanClubID]
}
