package event

import (
	"context"
	"log/slog"
)

// NoopEventPublisher is used when RabbitMQ is disabled; it only logs at debug level.
type NoopEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoopEventPublisher)(nil)

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger.With("component", "NoopEventPublisher")}
}

func (p *NoopEventPublisher) PublishCustomerCreated(ctx context.Context, _ CustomerCreatedEvent) error {
	p.skip(ctx, routingKeyCustomerCreated)
	return nil
}

func (p *NoopEventPublisher) PublishCustomerUpdated(ctx context.Context, _ CustomerUpdatedEvent) error {
	p.skip(ctx, routingKeyCustomerUpdated)
	return nil
}

func (p *NoopEventPublisher) PublishLoanCreated(ctx context.Context, _ LoanCreatedEvent) error {
	p.skip(ctx, routingKeyLoanCreated)
	return nil
}

func (p *NoopEventPublisher) PublishLoanClosed(ctx context.Context, _ LoanClosedEvent) error {
	p.skip(ctx, routingKeyLoanClosed)
	return nil
}

func (p *NoopEventPublisher) PublishInstallmentRecorded(ctx context.Context, _ InstallmentRecordedEvent) error {
	p.skip(ctx, routingKeyInstallmentRecorded)
	return nil
}

func (p *NoopEventPublisher) skip(ctx context.Context, routingKey string) {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event", slog.String("routingKey", routingKey))
}
