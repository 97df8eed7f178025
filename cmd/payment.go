package cmd

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/inbound/event"
	"concert-ticket-pipeline/outbound/payment"
	"concert-ticket-pipeline/outbound/postgres"
	"context"
	"github.com/spf13/viper"
)

func runQueuePaymentCmd(ctx context.Context, cfg *viper.Viper) {
	stopProfiling := startProfiling(cfg, "payment")
	defer stopProfiling()

	topic := mustGetString(cfg, "topic.order_events")
	table := mustGetString(cfg, "store.orders.table")

	db := newDb(cfg)
	defer db.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	paymentEvent := event.PaymentEvent{
		Orders:  postgres.NewOrderStore(db, table),
		Gateway: payment.SimulatedGateway{},
		Timeout: cfg.GetDuration(queueKey(queuePayment, "timeout")),
	}

	runQueueConsumer(ctx, cfg, js, queueConsumer{
		queue:    queuePayment,
		consumer: constant.ConsumerPayment,
		topic:    topic,
		handler:  paymentEvent.Handle,
	})
}
