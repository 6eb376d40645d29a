// internal/app/system/statuswatch/redis.go
package statuswatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "youthportal:status:"

// RedisHub delivers through Redis pub/sub so every instance behind a load
// balancer sees status changes made on any other instance. Each account
// has its own channel.
type RedisHub struct {
	rdb *redis.Client
	log *zap.Logger
}

var _ Hub = (*RedisHub)(nil)

// NewRedisHub connects to addr and verifies the connection.
func NewRedisHub(ctx context.Context, addr, password string, db int, log *zap.Logger) (*RedisHub, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisHub{rdb: rdb, log: log}, nil
}

func channel(userID string) string { return channelPrefix + userID }

func (h *RedisHub) Publish(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, channel(snap.UserID), payload).Err()
}

// Subscribe opens a Redis subscription that lives until the returned
// Subscription is closed or ctx ends.
func (h *RedisHub) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	ps := h.rdb.Subscribe(ctx, channel(userID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	done := make(chan struct{})
	sub := newSubscription(func() {
		close(done)
		_ = ps.Close()
	})

	go func() {
		msgs := ps.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				sub.Close()
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var snap Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					h.log.Warn("bad status payload", zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				sub.offer(snap)
			}
		}
	}()
	return sub, nil
}

// Ping is used by the health endpoint.
func (h *RedisHub) Ping(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}

func (h *RedisHub) Close() error {
	return h.rdb.Close()
}
