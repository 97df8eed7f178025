package cmd

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/inbound/event"
	"concert-ticket-pipeline/outbound/cache"
	"context"
	"github.com/spf13/viper"
)

func runQueueFanRewardCmd(ctx context.Context, cfg *viper.Viper) {
	stopProfiling := startProfiling(cfg, "fan-reward")
	defer stopProfiling()

	topic := mustGetString(cfg, "topic.order_events")
	table := mustGetString(cfg, "store.rewards.table")

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)

	rewardEvent := event.FanRewardEvent{
		Rewards: cache.RewardStore{Cache: cacheClient, Table: table},
		Timeout: cfg.GetDuration(queueKey(queueFanReward, "timeout")),
	}

	runQueueConsumer(ctx, cfg, js, queueConsumer{
		queue:    queueFanReward,
		consumer: constant.ConsumerFanReward,
		topic:    topic,
		handler:  rewardEvent.Handle,
	})
}
