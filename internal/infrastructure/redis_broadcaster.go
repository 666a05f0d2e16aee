package infrastructure

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

// RedisBroadcaster publishes product events on a Redis pub/sub channel.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	logger  *logging.Logger
}

func NewRedisBroadcaster(ctx context.Context, url, channel string, logger *logging.Logger) (*RedisBroadcaster, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("connected to redis", "addr", opt.Addr, "channel", channel)
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "redis_broadcaster"),
	}, nil
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, event events.Event) {
	data, err := events.Encode(event)
	if err != nil {
		b.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Warn("failed to publish event", "channel", b.channel, "error", err)
	}
}

func (b *RedisBroadcaster) Close() error {
	return b.client.Close()
}
