package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"examgate/internal/domain/booking"
	"examgate/internal/domain/purchase"
	"examgate/internal/domain/slot"
	"examgate/internal/infra"
	"examgate/internal/pkg/clock"
	"examgate/internal/pkg/errs"
	"examgate/internal/queue"
	"examgate/internal/usecase/queries"
	"examgate/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidVoucherCode = errs.New("voucher code not recognized")
	ErrVoucherNotUsable   = errs.New("voucher is not in a usable state")
	ErrAlreadyConsumed    = errs.New("voucher already consumed")
	ErrExpiredVoucher     = errs.New("voucher validity has passed")
)

// EventPublisher emits domain events after a redemption commits. Delivery
// is best-effort: a publish failure never rolls back the booking.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

type RedeemParams struct {
	VoucherCode string
	Applicant   booking.Applicant
}

type BookingCommands interface {
	// Redeem consumes a voucher exactly once: the purchase row is locked,
	// the booking inserted, and the purchase marked used in one
	// transaction. Concurrent redeems of the same code serialize on the
	// row lock; the loser observes the used status and fails.
	Redeem(ctx context.Context, params RedeemParams) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	publisher      EventPublisher
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	publisher EventPublisher,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		publisher:      publisher,
		clock:          clk,
	}
}

func (c *bookingCommandsImpl) Redeem(ctx context.Context, params RedeemParams) (*queries.BookingView, error) {
	if err := params.Applicant.Validate(); err != nil {
		return nil, errs.Mark(err, ErrVoucherNotUsable)
	}

	now := c.clock.Now()
	var (
		bookingID uuid.UUID
		event     *queue.BookingCreatedEvent
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Purchases().FindByCodeForUpdate(ctx, tx.DB(), params.VoucherCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInvalidVoucherCode
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		switch p.Status() {
		case purchase.StatusApproved:
			// proceed
		case purchase.StatusUsed:
			return ErrAlreadyConsumed
		case purchase.StatusExpired:
			return ErrExpiredVoucher
		default:
			return ErrVoucherNotUsable
		}
		if !now.Before(p.ValidityExpiresAt()) {
			// The sweeper has not flipped the row yet, but the window is
			// over, so redemption must refuse regardless.
			return ErrExpiredVoucher
		}

		slotEntity, err := tx.Slots().FindForUpdate(ctx, tx.DB(), p.SlotID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b, err := booking.NewExamBooking(p.ID(), params.Applicant, snapshotOf(slotEntity), now)
		if err != nil {
			return errs.Mark(err, ErrVoucherNotUsable)
		}
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrAlreadyConsumed
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Purchases().MarkUsed(ctx, tx.DB(), p.ID(), now); err != nil {
			if infra.IsKind(err, infra.KindPreconditionFailed) {
				return ErrAlreadyConsumed
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.notify(ctx, tx, b, now); err != nil {
			return err
		}

		bookingID = b.ID()
		event = &queue.BookingCreatedEvent{
			EventID:    uuid.New(),
			BookingID:  b.ID(),
			PurchaseID: p.ID(),
			SlotID:     slotEntity.ID(),
			SlotKind:   slotEntity.Kind().String(),
			OccurredAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.publisher.PublishBookingCreated(ctx, *event); err != nil {
		slog.Error("failed to publish booking.created event",
			"booking_id", bookingID, "error", err)
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func snapshotOf(s *slot.Slot) booking.ExamSnapshot {
	return booking.ExamSnapshot{
		Authority: s.Authority(),
		Location:  s.Location(),
		ExamDate:  s.ExamDate(),
		StartsAt:  s.Window().Start(),
		EndsAt:    s.Window().End(),
		FeeCents:  s.Price().Cents(),
	}
}

func (c *bookingCommandsImpl) notify(ctx context.Context, tx shared.Tx, b *booking.ExamBooking, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":  b.ID(),
		"purchase_id": b.PurchaseID(),
		"type":        "booking_confirmed",
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", "booking_confirmed", payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
