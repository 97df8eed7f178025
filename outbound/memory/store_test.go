package memory

import (
	"concert-ticket-pipeline/model"
	"context"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardStoreConcurrentIncrements(t *testing.T) {
	store := NewRewardStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.AddRewardPoints(context.Background(), []model.RewardAward{{FanClubID: "fan-1", Points: 100}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5000), store.RewardPoints("fan-1"))
}

func TestOrderStoreOverwrites(t *testing.T) {
	store := NewOrderStore()
	order := model.Order{OrderID: "order-1", TotalAmount: model.Some(90.0)}

	require.NoError(t, store.SaveOrder(context.Background(), order))
	require.NoError(t, store.SaveOrder(context.Background(), order))

	assert.Equal(t, 1, store.Len())
	stored, ok := store.FindOrder("order-1")
	require.True(t, ok)
	assert.Equal(t, order, stored)
}

func TestBusRecordsHeaders(t *testing.T) {
	bus := NewBus()

	msg := nats.NewMsg("order-events")
	msg.Data = []byte(`{"orderId":"order-1"}`)
	msg.Header.Set("hasFanClubMember", "true")

	ack, err := bus.PublishMsg(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "ORDER-EVENTS", ack.Stream)
	assert.Equal(t, uint64(1), ack.Sequence)

	msg.Header.Set("hasFanClubMember", "false")

	published := bus.Messages("order-events")
	require.Len(t, published, 1)
	assert.Equal(t, "true", published[0].Header.Get("hasFanClubMember"))
	assert.Empty(t, bus.Messages("notification-events"))
}
