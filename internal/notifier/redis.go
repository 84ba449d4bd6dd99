package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "dispatch_notifications"
)

// RedisNotifier ставит уведомления в очередь Redis; доставку выполняет DeliveryWorker
type RedisNotifier struct {
	redisClient *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{
		redisClient: client,
	}
}

// Notify публикует уведомление в очередь Redis
func (p *RedisNotifier) Notify(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
