package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"escrow/internal/core/domain/model/transfer"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNotConfirmed = errors.New("broker did not confirm the transfer message")

const (
	dialAttempts = 10
	dialBackoff  = 2 * time.Second
)

// RabbitMQTransferer publishes transfers to a durable queue and waits for the
// broker to confirm each message before reporting success. A closed
// connection or channel is reopened on the next Transfer.
type RabbitMQTransferer struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger

	// a channel in confirm mode must not publish concurrently
	mu sync.Mutex
}

// NewRabbitMQTransferer dials url, retrying while the broker starts, declares
// the durable queue and switches the channel to confirm mode.
func NewRabbitMQTransferer(url, queue string, logger *slog.Logger) (*RabbitMQTransferer, error) {
	p := &RabbitMQTransferer{
		url:    url,
		queue:  queue,
		logger: logger.With("component", "rabbitmq_transferer", "queue", queue),
	}

	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		p.conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		p.logger.Warn("failed to connect to RabbitMQ, retrying", "attempt", attempt, "error", err)
		time.Sleep(dialBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	if err = p.openChannel(); err != nil {
		_ = p.conn.Close()
		return nil, err
	}
	return p, nil
}

// openChannel opens a confirm-mode channel on the current connection and
// declares the queue. Callers hold mu, except the constructor.
func (p *RabbitMQTransferer) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("failed to declare a queue: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	p.channel = ch
	return nil
}

// reconnect restores whatever the broker closed. It makes a single attempt;
// the dispatch job retries failed transfers on its next run.
func (p *RabbitMQTransferer) reconnect() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
		}
		p.conn = conn
		p.channel = nil
		p.logger.Info("reconnected to RabbitMQ")
	}
	if p.channel == nil || p.channel.IsClosed() {
		return p.openChannel()
	}
	return nil
}

// Transfer publishes t as a persistent message and blocks until the broker
// acknowledges it or ctx ends.
func (p *RabbitMQTransferer) Transfer(ctx context.Context, t *transfer.Transfer) error {
	body, err := encode(t)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.reconnect(); err != nil {
		return fmt.Errorf("failed to publish transfer %s: %w", t.ID(), err)
	}

	confirmation, err := p.channel.PublishWithDeferredConfirmWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			MessageId:    t.ID().String(),
			ContentType:  contentType,
			Type:         t.Kind().String(),
			Timestamp:    t.CreatedAt(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("failed to publish transfer %s: %w", t.ID(), err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm transfer %s: %w", t.ID(), err)
	}
	if !acked {
		return fmt.Errorf("%w: %s", ErrPublishNotConfirmed, t.ID())
	}

	p.logger.InfoContext(ctx, "transfer published",
		"transfer_id", t.ID().String(),
		"order_id", t.OrderID().String(),
		"amount", t.Amount().String(),
	)
	return nil
}

func (p *RabbitMQTransferer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil && !p.channel.IsClosed() {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
