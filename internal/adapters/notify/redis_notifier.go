package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "catalog:reload"

// RedisNotifier announces catalog changes over Redis pub/sub so every
// server instance reloads after the shared catalog is reseeded.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel}
}

// NewRedisClient builds a client from a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}
	return client, nil
}

// Publish announces a catalog change. reason is carried as the message payload.
func (n *RedisNotifier) Publish(ctx context.Context, reason string) (int64, error) {
	receivers, err := n.client.Publish(ctx, n.channel, reason).Result()
	if err != nil {
		return 0, fmt.Errorf("publish catalog reload channel=%s: %w", n.channel, err)
	}
	return receivers, nil
}

// Listen subscribes to the reload channel and calls onReload for every
// message until ctx is done. It returns after the subscription is torn down.
func (n *RedisNotifier) Listen(ctx context.Context, onReload func(ctx context.Context, reason string)) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before reading messages.
	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("subscribe catalog reload channel=%s: %w", n.channel, err)
	}
	log.Printf("catalog reload listener subscribed channel=%s", n.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			onReload(ctx, msg.Payload)
		}
	}
}
