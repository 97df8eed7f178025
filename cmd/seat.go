package cmd

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/inbound/event"
	"concert-ticket-pipeline/outbound/postgres"
	"context"
	"github.com/spf13/viper"
)

func runQueueSeatInventoryCmd(ctx context.Context, cfg *viper.Viper) {
	stopProfiling := startProfiling(cfg, "seat-inventory")
	defer stopProfiling()

	topic := mustGetString(cfg, "topic.order_events")
	table := mustGetString(cfg, "store.seat_inventory.table")

	db := newDb(cfg)
	defer db.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	seatEvent := event.SeatInventoryEvent{
		Seats:   postgres.NewSeatInventoryStore(db, table),
		Timeout: cfg.GetDuration(queueKey(queueSeatInventory, "timeout")),
	}

	runQueueConsumer(ctx, cfg, js, queueConsumer{
		queue:    queueSeatInventory,
		consumer: constant.ConsumerSeatInventory,
		topic:    topic,
		handler:  seatEvent.Handle,
	})
}
