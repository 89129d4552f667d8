package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"examgate/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits events to RabbitMQ on a shared channel. Messages are
// persistent and the queue durable, so confirmed bookings survive a broker
// restart. A broken channel is reopened lazily on the next publish.
type Publisher struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	p := &Publisher{conn: conn}
	if err := p.ensureChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open channel")
	}
	if _, err := ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return errs.Wrap(err, "failed to declare queue")
	}
	p.ch = ch
	return nil
}

func (p *Publisher) PublishBookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureChannel(); err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx,
		"",                  // default exchange
		BookingCreatedQueue, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID.String(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch.Close()
	}
	return nil
}
