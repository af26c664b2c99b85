package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crashx/status"
)

var ErrSubscriptionClosed = errors.New("redis subscription closed")

// RedisSource subscribes to a pub/sub channel carrying JSON round snapshots
type RedisSource struct {
	url     string
	channel string
	in      ingest
}

func NewRedisSource(redisURL, channel string, log zerolog.Logger, reg *status.Registry) *RedisSource {
	return &RedisSource{
		url:     redisURL,
		channel: channel,
		in:      newIngest("redis", log, reg),
	}
}

func (s *RedisSource) Run(ctx context.Context, sink Sink) error {
	opt, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis ping: %w", err)
	}

	pubsub := client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the subscription confirmation so publish-after-Run is not lost
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe %s: %w", s.channel, err)
	}
	s.in.log.Info().Str("channel", s.channel).Msg("redis subscriber started")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return ErrSubscriptionClosed
			}
			_ = s.in.push(sink, []byte(msg.Payload))
		}
	}
}
