package broker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"clipvault/internal/domain/repository/broker"
	"clipvault/pkg/logger"
)

type Receiver struct {
	redis     *redis.Client
	stream    string
	group     string
	blockTime time.Duration
}

func NewReceiver(client *Client) *Receiver {
	return &Receiver{
		redis:     client.redis,
		stream:    client.stream,
		group:     client.group,
		blockTime: 5 * time.Second,
	}
}

func (r *Receiver) Messages(ctx context.Context, consumerName string) (<-chan broker.Message, error) {
	if r.redis == nil {
		return nil, errors.New("redis not initialized")
	}

	out := make(chan broker.Message)
	go r.consumeLoop(ctx, out, consumerName)

	return out, nil
}

func (r *Receiver) consumeLoop(ctx context.Context, out chan broker.Message, consumerName string) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			logger.Info("broker receiver stopping", "consumer", consumerName)

			return
		default:
			r.readAndEmit(ctx, out, consumerName)
		}
	}
}

func (r *Receiver) readAndEmit(ctx context.Context, out chan broker.Message, consumerName string) {
	entries, err := r.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    r.group,
		Consumer: consumerName,
		Streams:  []string{r.stream, ">"},
		Count:    1,
		Block:    r.blockTime,
	}).Result()

	if err != nil && !errors.Is(err, redis.Nil) {
		if !errors.Is(err, context.Canceled) {
			logger.Error("failed to read from redis stream group", "err", err)
		}

		return
	}

	for _, stream := range entries {
		for _, msg := range stream.Messages {
			body, ok := msg.Values["body"].(string)
			if !ok {
				logger.Error("invalid body type in redis message", "id", msg.ID)

				continue
			}
			out <- &RedisMessage{
				stream:      r.stream,
				group:       r.group,
				consumer:    consumerName,
				id:          msg.ID,
				body:        body,
				redisClient: r.redis,
			}
		}
	}
}
