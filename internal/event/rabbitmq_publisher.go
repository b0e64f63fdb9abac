package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/traceid"
	"github.com/oklog/ulid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	routingKeyCustomerCreated     = "customer.created"
	routingKeyCustomerUpdated     = "customer.updated"
	routingKeyLoanCreated         = "loan.created"
	routingKeyLoanClosed          = "loan.closed"
	routingKeyInstallmentRecorded = "installment.recorded"
	publisherAppID                = "welfare-ledger"
)

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error
	PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error
	PublishLoanClosed(ctx context.Context, event LoanClosedEvent) error
	PublishInstallmentRecorded(ctx context.Context, event InstallmentRecordedEvent) error
}

type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (EventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	if err := declareExchange(conn, exchangeName); err != nil {
		return nil, err
	}
	logger.Info("Ledger events exchange ready", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

// declareExchange makes sure the durable topic exchange exists before the first publish.
func declareExchange(conn *amqp.Connection, exchangeName string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for exchange declaration: %w", err)
	}
	defer ch.Close()

	durable, autoDelete, internal, noWait := true, false, false, false
	if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, durable, autoDelete, internal, noWait, nil); err != nil {
		return fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	return nil
}

func (p *RabbitMQEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	return p.publish(ctx, routingKeyCustomerCreated, event)
}

func (p *RabbitMQEventPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	return p.publish(ctx, routingKeyCustomerUpdated, event)
}

func (p *RabbitMQEventPublisher) PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error {
	return p.publish(ctx, routingKeyLoanCreated, event)
}

func (p *RabbitMQEventPublisher) PublishLoanClosed(ctx context.Context, event LoanClosedEvent) error {
	return p.publish(ctx, routingKeyLoanClosed, event)
}

func (p *RabbitMQEventPublisher) PublishInstallmentRecorded(ctx context.Context, event InstallmentRecordedEvent) error {
	return p.publish(ctx, routingKeyInstallmentRecorded, event)
}

// publish sends one persistent JSON message; the routing key doubles as the message type
// so consumers bound with wildcards can still tell events apart.
func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ulid.Make().String(),
		Type:         routingKey,
		Timestamp:    time.Now().UTC(),
		AppId:        publisherAppID,
		Body:         body,
	}
	if traceID := traceid.FromContext(ctx); traceID != "" {
		msg.CorrelationId = traceID
	}
	log := p.logger.With(slog.String("routingKey", routingKey), slog.String("messageID", msg.MessageId))

	channel, err := p.conn.Channel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	if err := channel.PublishWithContext(ctx, p.exchangeName, routingKey, false, false, msg); err != nil {
		log.ErrorContext(ctx, "Failed to publish ledger event", slog.Any("error", err))
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	log.DebugContext(ctx, "Published ledger event", "bodySize", len(body))
	return nil
}
