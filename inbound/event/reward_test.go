package event

import (
	"concert-ticket-pipeline/common/errs"
	"concert-ticket-pipeline/model"
	"concert-ticket-pipeline/outbound/memory"
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"
)

type FanRewardEventTestSuite struct {
	suite.Suite
	rewards     *memory.RewardStore
	rewardEvent FanRewardEvent
}

func (s *FanRewardEventTestSuite) SetupTest() {
	s.rewards = memory.NewRewardStore()
	s.rewardEvent = FanRewardEvent{Rewards: s.rewards, Timeout: 10 * time.Second}
}

func TestFanRewardEventTestSuite(t *testing.T) {
	suite.Run(t, new(FanRewardEventTestSuite))
}

func (s *FanRewardEventTestSuite) TestHandle() {
	order := erasOrder()
	order.Tickets = append(order.Tickets,
		model.TicketSelection{IsFanClubMember: true, FanClubID: "fan-1"},
		model.TicketSelection{IsFanClubMember: true, FanClubID: "fan-2"},
		model.TicketSelection{FanClubID: "fan-3"},
	)

	err := s.rewardEvent.Handle(context.Background(), orderRecord(s.T(), "order-events", order))
	s.Require().NoError(err)

	s.Equal(int64(200), s.rewards.RewardPoints("fan-1"))
	s.Equal(int64(100), s.rewards.RewardPoints("fan-2"))
	s.Equal(int64(0), s.rewards.RewardPoints("fan-3"))
}

func (s *FanRewardEventTestSuite) TestHandleSkipsWithoutDecoding() {
	header := nats.Header{}
	header.Set("hasFanClubMember", "false")

	err := s.rewardEvent.Handle(context.Background(), Record{Header: header, Data: []byte("{not json")})
	s.NoError(err)
}

func (s *FanRewardEventTestSuite) TestHandleMissingHeaderStillDecodes() {
	rec := orderRecord(s.T(), "order-events", erasOrder())
	rec.Header = nil

	s.Require().NoError(s.rewardEvent.Handle(context.Background(), rec))
	s.Equal(int64(100), s.rewards.RewardPoints("fan-1"))
}

// Redelivery credits again; rewards are not deduplicated by order id.
func (s *FanRewardEventTestSuite) TestHandleRedeliveryDoubleCounts() {
	rec := orderRecord(s.T(), "order-events", erasOrder())

	s.Require().NoError(s.rewardEvent.Handle(context.Background(), rec))
	s.Require().NoError(s.rewardEvent.Handle(context.Background(), rec))

	s.Equal(int64(200), s.rewards.RewardPoints("fan-1"))
}

func (s *FanRewardEventTestSuite) TestHandleErrors() {
	noFanClubID := erasOrder()
	noFanClubID.Tickets[0].FanClubID = ""

	s.Run("member without fan club id", func() {
		err := s.rewardEvent.Handle(context.Background(), orderRecord(s.T(), "order-events", noFanClubID))
		s.Require().Error(err)
		s.True(errs.IsMalformed(err))
	})

	s.Run("store failure", func() {
		event := FanRewardEvent{Rewards: failingRewardStore{}}
		err := event.Handle(context.Background(), orderRecord(s.T(), "order-events", erasOrder()))
		s.Require().Error(err)
		s.True(errs.IsDependency(err))
	})
}

func TestRewardAwards(t *testing.T) {
	awards, err := RewardAwards([]model.TicketSelection{
		{IsFanClubMember: true, FanClubID: "a"},
		{FanClubID: "ignored"},
		{IsFanClubMember: true, FanClubID: "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.RewardAward{{FanClubID: "a", Points: 100}, {FanClubID: "b", Points: 100}}
	if len(awards) != len(expected) {
		t.Fatalf("got %d awards, want %d", len(awards), len(expected))
	}
	for i := range expected {
		if awards[i] != expected[i] {
			t.Fatalf("award %d = %+v, want %+v", i, awards[i], expected[i])
		}
	}
}
