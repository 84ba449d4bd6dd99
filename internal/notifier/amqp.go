package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Channel - часть *amqp091.Channel, нужная для публикации
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPNotifier публикует уведомления в topic exchange; ключ маршрутизации - тип уведомления
type AMQPNotifier struct {
	conn     *amqp091.Connection
	exchange string
	logger   *logrus.Logger

	mu sync.Mutex // канал AMQP не потокобезопасен
	ch Channel
}

func NewAMQPNotifier(ch Channel, exchange string, logger *logrus.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		ch:       ch,
		exchange: exchange,
		logger:   logger,
	}
}

// DialAMQP подключается к брокеру и объявляет exchange
func DialAMQP(url, exchange string, logger *logrus.Logger) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(conn.Close(), fmt.Errorf("failed to open channel: %w", err))
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, errors.Join(conn.Close(), fmt.Errorf("failed to declare exchange: %w", err))
	}

	n := NewAMQPNotifier(ch, exchange, logger)
	n.conn = conn
	logger.WithField("exchange", exchange).Info("Connected to RabbitMQ")
	return n, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, note models.Notification) error {
	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	err = n.ch.PublishWithContext(ctx, n.exchange, string(note.Kind), false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification to RabbitMQ: %w", err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	defer n.logger.Info("RabbitMQ connection closed")
	return n.conn.Close()
}
