package cmd

import (
	"concert-ticket-pipeline/common/constant"
	commonJetstream "concert-ticket-pipeline/common/jetstream"
	"concert-ticket-pipeline/inbound/event"
	"context"
	"github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"time"
)

const (
	queuePayment         = "payment"
	queueSeatInventory   = "seat_inventory"
	queueFanReward       = "fan_reward"
	queueNotification    = "notification"
	queueNotificationLog = "notification_log"
)

func queueKey(queue, field string) string {
	return "queue." + queue + "." + field
}

type queueConsumer struct {
	queue    string
	consumer string
	topic    string
	handler  event.HandlerFunc
}

// runQueueConsumer pulls batches from a durable consumer on the topic's
// stream until ctx is done. Each batch goes through one Dispatcher.
func runQueueConsumer(ctx context.Context, cfg *viper.Viper, js jetstream.JetStream, qc queueConsumer) {
	st, err := commonJetstream.CreateTopicStream(ctx, js, qc.topic)
	if err != nil {
		log.Fatalln("failed to create stream", err)
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       mustGetString(cfg, queueKey(qc.queue, "durable")),
		FilterSubject: qc.topic,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		MaxDeliver:    cfg.GetInt(queueKey(qc.queue, "max_deliver")),
		AckWait:       cfg.GetDuration(queueKey(qc.queue, "ack_wait")),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	dispatcher := event.Dispatcher{
		Consumer:    qc.consumer,
		Handler:     qc.handler,
		Concurrency: cfg.GetInt(queueKey(qc.queue, "concurrency")),
	}
	batchSize := cfg.GetInt(queueKey(qc.queue, "batch_size"))
	batchWait := cfg.GetDuration(queueKey(qc.queue, "batch_wait"))
	consumerAttr := slog.String(constant.LogFieldConsumer, qc.consumer)

	done := make(chan struct{})
	go func() {
		defer close(done)

		for ctx.Err() == nil {
			batch, err := cons.Fetch(batchSize, jetstream.FetchMaxWait(batchWait))
			if err != nil {
				slog.ErrorContext(ctx, "Error fetching messages", consumerAttr, slog.Any(constant.LogFieldErr, err))
				select {
				case <-ctx.Done():
				case <-time.After(batchWait):
				}
				continue
			}

			msgs := make([]jetstream.Msg, 0, batchSize)
			for msg := range batch.Messages() {
				msgs = append(msgs, msg)
			}

			if err := batch.Error(); err != nil && !errors.Is(err, nats.ErrTimeout) {
				slog.ErrorContext(ctx, "Error reading batch", consumerAttr, slog.Any(constant.LogFieldErr, err))
			}

			if len(msgs) == 0 {
				continue
			}

			settleBatch(ctx, qc.consumer, msgs, dispatcher.Dispatch(ctx, toRecords(msgs)))
		}
	}()

	slog.InfoContext(ctx, qc.consumer+" queue consumer started", slog.String(constant.LogFieldSubject, qc.topic))

	<-ctx.Done()
	<-done

	slog.InfoContext(ctx, qc.consumer+" queue consumer stopped")
}

func toRecords(msgs []jetstream.Msg) []event.Record {
	records := make([]event.Record, len(msgs))
	for i, msg := range msgs {
		records[i] = event.Record{Subject: msg.Subject(), Header: msg.Headers(), Data: msg.Data()}
	}
	return records
}

type settler interface {
	Ack() error
	Nak() error
	Term() error
}

// settleBatch acknowledges processed records, terminates malformed ones and
// hands failed ones back for redelivery.
func settleBatch[M settler](ctx context.Context, consumer string, msgs []M, results []event.Result) {
	for i, result := range results {
		var err error
		switch result.Outcome {
		case event.OutcomeProcessed:
			err = msgs[i].Ack()
		case event.OutcomeMalformed:
			err = msgs[i].Term()
		default:
			err = msgs[i].Nak()
		}

		if err != nil {
			slog.ErrorContext(ctx, "Error settling message",
				slog.String(constant.LogFieldConsumer, consumer),
				slog.String("outcome", result.Outcome.String()),
				slog.Any(constant.LogFieldErr, err),
			)
		}
	}
}
