package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	hitPrefix      = "hits:"
	streamVerdicts = "truthlenz.verdicts"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// IncrHit bumps the redis-side hit counter for a fingerprint.
func IncrHit(ctx context.Context, rdb *redis.Client, hash string) error {
	return rdb.Incr(ctx, hitPrefix+hash).Err()
}

// PublishVerdict emits a fresh verdict onto the event stream for sibling
// consumers (stats, moderation review).
func PublishVerdict(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamVerdicts,
		Values: payload,
	}).Result()
	return err
}
