package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisChangeFeed carries change signals between instances over Redis
// Pub/Sub. Each instance holds one subscription and relays to its local hub.
type RedisChangeFeed struct {
	client  *redis.Client
	channel string
	hub     *ChangeHub
	logger  *zap.Logger
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// NewRedisChangeFeed creates a feed on an existing client. The caller owns
// the client.
func NewRedisChangeFeed(client *redis.Client, channel string, logger *zap.Logger) *RedisChangeFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisChangeFeed{
		client:  client,
		channel: channel,
		hub:     NewChangeHub(),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start subscribes to the channel and relays messages until Close
func (f *RedisChangeFeed) Start(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pubsub := f.client.Subscribe(subCtx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}
	f.cancel = cancel
	f.logger.Info("subscribed to notification changes", zap.String("channel", f.channel))

	go func() {
		defer close(f.done)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					f.logger.Warn("notification change channel closed")
					return
				}
				if !f.hub.relay(subCtx, msg.Payload) {
					f.logger.Warn("ignoring malformed change signal", zap.String("payload", msg.Payload))
				}
			}
		}
	}()
	return nil
}

// Publish announces a change of officeID to every instance
func (f *RedisChangeFeed) Publish(ctx context.Context, officeID uuid.UUID) error {
	if err := f.client.Publish(ctx, f.channel, officeID.String()).Err(); err != nil {
		return fmt.Errorf("failed to publish change signal: %w", err)
	}
	return nil
}

// Subscribe registers a local subscriber
func (f *RedisChangeFeed) Subscribe(ctx context.Context, officeID uuid.UUID) (<-chan struct{}, error) {
	return f.hub.Subscribe(ctx, officeID)
}

// Close stops the relay
func (f *RedisChangeFeed) Close() error {
	f.once.Do(func() {
		if f.cancel == nil {
			close(f.done)
			return
		}
		f.cancel()
	})
	<-f.done
	return nil
}
