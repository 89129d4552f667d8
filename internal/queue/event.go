package queue

import (
	"time"

	"github.com/google/uuid"
)

const (
	// BookingCreatedQueue is the durable queue carrying booking facts to
	// the slot closer.
	BookingCreatedQueue = "booking.created"
)

// BookingCreatedEvent is published after a voucher redemption commits.
// EventID is the dedup key: redeliveries reuse it, so consumers can drop
// duplicates without reprocessing.
type BookingCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	PurchaseID uuid.UUID `json:"purchase_id"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotKind   string    `json:"slot_kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
