package cmd

import (
	"concert-ticket-pipeline/common/constant"
	commonJetstream "concert-ticket-pipeline/common/jetstream"
	"concert-ticket-pipeline/inbound/event"
	"context"
	"github.com/spf13/viper"
	"log"
)

func runQueueNotificationCmd(ctx context.Context, cfg *viper.Viper) {
	stopProfiling := startProfiling(cfg, "notification")
	defer stopProfiling()

	orderTopic := mustGetString(cfg, "topic.order_events")
	notificationTopic := mustGetString(cfg, "topic.notification_events")

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	if _, err := commonJetstream.CreateTopicStream(ctx, js, notificationTopic); err != nil {
		log.Fatalln("failed to create stream", err)
	}

	notificationEvent := event.NotificationEvent{
		Publisher: js,
		Subject:   notificationTopic,
		Timeout:   cfg.GetDuration(queueKey(queueNotification, "timeout")),
	}

	runQueueConsumer(ctx, cfg, js, queueConsumer{
		queue:    queueNotification,
		consumer: constant.ConsumerNotification,
		topic:    orderTopic,
		handler:  notificationEvent.Handle,
	})
}

func runQueueNotificationLogCmd(ctx context.Context, cfg *viper.Viper) {
	topic := mustGetString(cfg, "topic.notification_events")

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	runQueueConsumer(ctx, cfg, js, queueConsumer{
		queue:    queueNotificationLog,
		consumer: constant.ConsumerNotificationLog,
		topic:    topic,
		handler:  event.NotificationLogEvent{}.Handle,
	})
}
