package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"

	"vidconv/internal/config"
	"vidconv/internal/model"
)

// brokerChannel is the confirm-mode slice of *amqp.Channel the publisher
// uses, kept behind an interface so ack, nack, and retry behavior can be
// exercised without a broker.
type brokerChannel interface {
	publishWithConfirm(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// confirmation is a pending broker ack for one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
	Tag() uint64
}

type amqpChannel struct {
	ch *amqp.Channel
}

func (a *amqpChannel) publishWithConfirm(ctx context.Context, queue string, msg amqp.Publishing) (confirmation, error) {
	c, err := a.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return nil, err
	}
	return &amqpConfirmation{c: c}, nil
}

func (a *amqpChannel) Close() error { return a.ch.Close() }

type amqpConfirmation struct {
	c *amqp.DeferredConfirmation
}

func (a *amqpConfirmation) WaitContext(ctx context.Context) (bool, error) {
	return a.c.WaitContext(ctx)
}

func (a *amqpConfirmation) Tag() uint64 { return a.c.DeliveryTag }

// amqpPublisher implements Publisher on a RabbitMQ channel in confirm mode.
// An AMQP channel is single-writer, so publishes are serialized with a mutex
// here rather than by callers.
type amqpPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    brokerChannel
	queue string
}

// NewAMQP dials the broker, opens a channel in confirm mode, and declares the
// durable work queue. The connection is long-lived and shared across requests.
func NewAMQP(cfg config.AMQPConfig) (Publisher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("amqp url is required")
	}
	if cfg.Queue == "" {
		return nil, fmt.Errorf("amqp queue name is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	// Durable queue: messages survive a broker restart.
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Queue, err)
	}

	return &amqpPublisher{conn: conn, ch: &amqpChannel{ch: ch}, queue: cfg.Queue}, nil
}

// Publish enqueues the task with persistent delivery and waits for the broker
// ack. Transient failures are retried a bounded number of times with
// exponential backoff; the store step is never retried here, only publish.
func (p *amqpPublisher) Publish(ctx context.Context, task model.ConvertTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := p.publishOnce(ctx, body); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (p *amqpPublisher) publishOnce(ctx context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	confirm, err := p.ch.publishWithConfirm(ctx, p.queue, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %q: %w", p.queue, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm: %w", err)
	}
	if !acked {
		return fmt.Errorf("broker nacked delivery %d", confirm.Tag())
	}
	return nil
}

// Close releases the channel before the connection.
func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		return fmt.Errorf("close channel: %w", err)
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
