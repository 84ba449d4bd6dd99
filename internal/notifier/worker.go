package notifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const signatureHeader = "X-Webhook-Signature"

// DeliveryWorker забирает уведомления из очереди и отправляет их в push-шлюз
type DeliveryWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

func NewDeliveryWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *DeliveryWorker {
	return &DeliveryWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.PushTimeout,
		},
	}
}

// Start запускает горутину обработки очереди уведомлений
func (w *DeliveryWorker) Start(ctx context.Context) {
	w.logger.Info("Starting notification delivery worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification delivery worker.")
				return
			default:
				// 0 - бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop notification from Redis")
					w.sleep(ctx, w.cfg.PushTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var n models.Notification
				if err := json.Unmarshal([]byte(payload), &n); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
					continue
				}

				if err := w.deliver(ctx, n, payload); err != nil {
					w.logger.WithError(err).WithFields(logrus.Fields{
						"target_id": n.TargetID,
						"kind":      n.Kind,
					}).Error("Notification dropped")
				}
			}
		}
	}()
}

func (w *DeliveryWorker) deliver(ctx context.Context, n models.Notification, rawPayload string) error {
	log := w.logger.WithFields(logrus.Fields{
		"target_id":   n.TargetID,
		"kind":        n.Kind,
		"incident_id": n.IncidentID,
	})
	log.Debug("Delivering notification...")

	if w.cfg.PushGatewayURL == "" {
		log.Warn("Push gateway URL is not configured. Skipping delivery.")
		return nil
	}

	maxRetries := max(w.cfg.PushMaxRetries, 1)
	delay := w.cfg.PushBaseDelay

	var lastErr error
	for i := range maxRetries {
		lastErr = w.send(ctx, rawPayload)
		if lastErr == nil {
			log.Info("Notification delivered successfully.")
			return nil
		}
		if i == maxRetries-1 {
			break
		}
		log.WithError(lastErr).Warnf("Notification delivery failed. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		if !w.sleep(ctx, delay) {
			return ctx.Err()
		}
		delay *= 2 // Экспоненциальная задержка
	}
	return fmt.Errorf("failed to deliver notification after %d attempts: %w", maxRetries, lastErr)
}

func (w *DeliveryWorker) send(ctx context.Context, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.PushGatewayURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись, если PUSH_SECRET задан
	if w.cfg.PushSecret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(rawPayload, w.cfg.PushSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway responded with status code %d", resp.StatusCode)
	}
	return nil
}

func (w *DeliveryWorker) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
