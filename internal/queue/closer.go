package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"examgate/internal/domain/slot"
	"examgate/internal/infra"
	"examgate/internal/pkg/clock"
	"examgate/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectMax = 30 * time.Second

// Closer consumes booking.created and closes physical appointment slots as
// soon as their booking lands. Physical slots are consumed whole: once one
// candidate has booked, keeping the slot listed only produces doomed
// purchase attempts, so the consumer flips it closed out-of-band instead of
// waiting for the sweeper.
//
// Redeliveries are filtered through the dedup store: the event ID is
// claimed before processing, so a redelivered message after an ack loss is
// dropped rather than reprocessed. The close itself is also idempotent, the
// dedup just keeps the noise down.
type Closer struct {
	url   string
	uow   shared.UnitOfWork
	dedup DedupStore
	clock clock.Clock

	stop chan struct{}
	done chan struct{}
}

func NewCloser(url string, uow shared.UnitOfWork, dedup DedupStore, clk clock.Clock) *Closer {
	return &Closer{
		url:   url,
		uow:   uow,
		dedup: dedup,
		clock: clk,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the consume loop with exponential reconnect backoff.
func (c *Closer) Start() {
	go c.run()
}

func (c *Closer) Stop(ctx context.Context) error {
	close(c.stop)
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Closer) run() {
	defer close(c.done)

	backoff := time.Second
	for {
		select {
		case <-c.stop:
			return
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			slog.Warn("closer: broker dial failed", "error", err, "retry_in", backoff)
			select {
			case <-c.stop:
				return
			case <-time.After(backoff):
			}
			if backoff < reconnectMax {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(conn); err != nil {
			slog.Warn("closer: consume loop ended, reconnecting", "error", err)
		}
		_ = conn.Close()
	}
}

func (c *Closer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		slog.Warn("closer: set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil); err != nil {
		return err
	}
	msgs, err := ch.Consume(BookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-c.stop:
			return nil
		case d, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}
			if err := c.Handle(d.Body); err != nil {
				slog.Error("closer: handling event failed", "error", err)
				// Requeue once; Handle releases its dedup claim on
				// failure, so the redelivery gets a real retry.
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle processes one raw booking.created payload. Exported so tests can
// drive deliveries directly, the way the sweeper exposes SweepOnce.
func (c *Closer) Handle(body []byte) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		// Malformed payload will never parse; drop it.
		slog.Error("closer: dropping malformed event", "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fresh, err := c.dedup.Claim(ctx, ev.EventID.String())
	if err != nil {
		return err
	}
	if !fresh {
		slog.Debug("closer: duplicate event dropped", "event_id", ev.EventID)
		return nil
	}

	if ev.SlotKind != slot.KindPhysicalAppointment.String() {
		return nil
	}

	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Close(ctx, tx.DB(), ev.SlotID, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Slot deleted between booking and delivery; nothing to close.
			return nil
		}
		// Hand the claim back so a redelivery can retry past a transient
		// failure instead of being swallowed by the dedup.
		if relErr := c.dedup.Release(ctx, ev.EventID.String()); relErr != nil {
			slog.Warn("closer: failed to release dedup claim",
				"event_id", ev.EventID, "error", relErr)
		}
		return err
	}

	slog.Info("closer: physical slot closed after booking",
		"slot_id", ev.SlotID, "booking_id", ev.BookingID)
	return nil
}
