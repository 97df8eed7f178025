package cache

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/model"
	"context"
	"fmt"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RewardStore keeps one hash per fan-club member under the configured table prefix.
type RewardStore struct {
	Cache *redis.Client
	Table string
}

// AddRewardPoints applies every award with HINCRBY inside one MULTI/EXEC, so an
// order's credits land together. Increments commute; nothing is read first.
func (s RewardStore) AddRewardPoints(ctx context.Context, awards []model.RewardAward) error {
	if len(awards) == 0 {
		return nil
	}

	pipe := s.Cache.TxPipeline()
	for _, award := range awards {
		pipe.HIncrBy(ctx, s.key(award.FanClubID), constant.RewardPointsField, award.Points)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "increment reward points")
	}

	return nil
}

func (s RewardStore) key(fanClubID string) string {
	return fmt.Sprintf(constant.RewardKey, s.Table, fanClubID)
}
