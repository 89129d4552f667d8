package shared

import (
	"context"
	"time"

	"examgate/internal/domain/booking"
	"examgate/internal/domain/purchase"
	"examgate/internal/domain/slot"
	"examgate/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Slots() SlotRepository
	Purchases() PurchaseRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type SlotRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, s *slot.Slot) error
	Reserve(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) (*slot.Slot, error)
	Release(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) error
	Close(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) error
	CloseTimedOut(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
	FindForUpdate(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID) (*slot.Slot, error)
	UpdateDetails(ctx context.Context, dbtx db.DBTX, s *slot.Slot, now time.Time) error
	Delete(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *purchase.Purchase) error
	ApproveAndIssue(ctx context.Context, dbtx db.DBTX, id uuid.UUID, code string, now time.Time) error
	MarkCancelled(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) (uuid.UUID, error)
	MarkUsed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) error
	FindStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (purchase.Status, error)
	FindByCodeForUpdate(ctx context.Context, dbtx db.DBTX, code string) (*purchase.Purchase, error)
	CancelHoldExpired(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
	ExpireValidityPassed(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.ExamBooking) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
