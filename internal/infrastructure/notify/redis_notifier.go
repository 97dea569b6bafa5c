package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appfinance "github.com/motogarage/backend/internal/application/finance"
	"github.com/motogarage/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultChannel = "settlements"

// RedisSettlementNotifier publishes settlement notifications on a Redis
// Pub/Sub channel. Receipt printers and dashboards subscribe to it.
type RedisSettlementNotifier struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	logger     *zap.Logger
}

// RedisSettlementNotifierOption is a functional option for configuring the notifier
type RedisSettlementNotifierOption func(*RedisSettlementNotifier)

// WithChannel sets the Pub/Sub channel name
func WithChannel(channel string) RedisSettlementNotifierOption {
	return func(n *RedisSettlementNotifier) {
		n.channel = channel
	}
}

// WithLogger sets the logger for the notifier
func WithLogger(logger *zap.Logger) RedisSettlementNotifierOption {
	return func(n *RedisSettlementNotifier) {
		n.logger = logger
	}
}

// NewRedisSettlementNotifier connects to Redis and returns a notifier
func NewRedisSettlementNotifier(cfg config.RedisConfig, opts ...RedisSettlementNotifierOption) (*RedisSettlementNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	n := &RedisSettlementNotifier{
		client:     client,
		ownsClient: true,
		channel:    defaultChannel,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NewRedisSettlementNotifierWithClient creates a notifier with an existing
// Redis client. The caller retains ownership of the client.
func NewRedisSettlementNotifierWithClient(client *redis.Client, opts ...RedisSettlementNotifierOption) *RedisSettlementNotifier {
	n := &RedisSettlementNotifier{
		client:  client,
		channel: defaultChannel,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// PublishSettlement sends the notification to all subscribers
func (n *RedisSettlementNotifier) PublishSettlement(ctx context.Context, notification appfinance.SettlementNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.logger.Error("Failed to publish settlement notification",
			zap.String("channel", n.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish settlement notification: %w", err)
	}

	n.logger.Debug("Published settlement notification",
		zap.String("customer_id", notification.CustomerID.String()),
		zap.String("channel", n.channel))

	return nil
}

// Close releases the Redis client if this notifier created it
func (n *RedisSettlementNotifier) Close() error {
	if n.ownsClient {
		return n.client.Close()
	}
	return nil
}

var _ appfinance.SettlementNotifier = (*RedisSettlementNotifier)(nil)
