// Package rabbitmq publishes order status events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"footprint/internal/core/ports"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker/v2"
)

const (
	// ExchangeName is the topic exchange for fulfillment events.
	ExchangeName = "footprint.fulfillment"

	// StatusChangedRoutingKey is the routing key and message type of status events.
	StatusChangedRoutingKey = "order.status_changed"
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// BreakerConfig controls the circuit breaker in front of the broker.
type BreakerConfig struct {
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 5, OpenTimeout: 30 * time.Second}
}

// statusChangedMessage is the wire body of a status event.
type statusChangedMessage struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus"`
	ChangedBy      string    `json:"changedBy"`
	ChangedAt      time.Time `json:"changedAt"`
}

// StatusEventPublisher implements ports.EventPublisher. While the broker is
// failing the breaker opens and events are dropped at once instead of holding up
// the request that triggered them.
type StatusEventPublisher struct {
	channel  Channel
	exchange string
	breaker  *gobreaker.CircuitBreaker[struct{}]
	logger   *slog.Logger
	mu       sync.Mutex
	closers  []func() error
}

// NewStatusEventPublisher publishes through an already opened channel.
func NewStatusEventPublisher(ch Channel, cfg BreakerConfig, logger *slog.Logger) *StatusEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "rabbitmq_publisher")

	p := &StatusEventPublisher{
		channel:  ch,
		exchange: ExchangeName,
		logger:   logger,
	}
	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "rabbitmq",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return p
}

// Dial connects to url, declares the exchange and returns a publisher that owns
// the connection. Close releases it.
func Dial(url string, cfg BreakerConfig, logger *slog.Logger) (*StatusEventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p := NewStatusEventPublisher(ch, cfg, logger)
	p.closers = []func() error{ch.Close, conn.Close}
	p.logger.Info("RabbitMQ publisher connected", "exchange", ExchangeName)
	return p, nil
}

// PublishStatusChanged sends one message per event. Every event is attempted;
// the returned error joins all failures.
func (p *StatusEventPublisher) PublishStatusChanged(ctx context.Context, events ...ports.StatusChangedEvent) error {
	var failures []error
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", event.OrderID, err))
		}
	}
	return errors.Join(failures...)
}

func (p *StatusEventPublisher) publish(ctx context.Context, event ports.StatusChangedEvent) error {
	body, err := json.Marshal(statusChangedMessage{
		OrderID:        event.OrderID.String(),
		Status:         string(event.Status),
		PreviousStatus: string(event.PreviousStatus),
		ChangedBy:      event.ChangedBy,
		ChangedAt:      event.ChangedAt.UTC(),
	})
	if err != nil {
		return err
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()

		return struct{}{}, p.channel.PublishWithContext(ctx,
			p.exchange,              // exchange
			StatusChangedRoutingKey, // routing key
			false,                   // mandatory
			false,                   // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    uuid.NewString(),
				Type:         StatusChangedRoutingKey,
				Timestamp:    event.ChangedAt,
				Body:         body,
			},
		)
	})
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "Status event published",
		"order_id", event.OrderID.String(),
		"status", string(event.Status),
	)
	return nil
}

// Close releases the channel and connection opened by Dial.
func (p *StatusEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishStatusChanged(ctx context.Context, events ...ports.StatusChangedEvent) error {
	p.logger.DebugContext(ctx, "Status events dropped, no broker configured", "events", len(events))
	return nil
}
