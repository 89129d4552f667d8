package commands

import (
	"context"
	"errors"
	"time"

	"examgate/internal/domain/slot"
	"examgate/internal/infra"
	"examgate/internal/pkg/clock"
	"examgate/internal/pkg/errs"
	"examgate/internal/usecase/queries"
	"examgate/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlotInput  = errs.New("invalid slot input")
	ErrCapacityBelowHeld = errs.New("capacity cannot drop below held bookings")
	ErrSlotHasPurchases  = errs.New("slot still has purchases")
)

type SlotInput struct {
	Kind           slot.Kind
	ExamDate       time.Time
	StartsAt       time.Time
	EndsAt         time.Time
	PriceCents     int64
	MaxCapacity    int32
	AbsoluteExpiry *time.Time
	HoldDuration   *time.Duration
	Authority      string
	Location       string
}

type SlotAdminCommands interface {
	Create(ctx context.Context, input SlotInput) (*queries.SlotView, error)
	// Update edits slot details under a row lock. Capacity can only grow
	// or shrink down to the currently held count, never below it.
	Update(ctx context.Context, slotID uuid.UUID, input SlotInput) (*queries.SlotView, error)
	// Close makes the slot unavailable permanently. Existing purchases
	// keep their lifecycle; only new admissions stop.
	Close(ctx context.Context, slotID uuid.UUID) error
	Delete(ctx context.Context, slotID uuid.UUID) error
	// CancelPurchase is the admin override: cancels a non-terminal
	// purchase and returns its capacity unit to the slot.
	CancelPurchase(ctx context.Context, purchaseID uuid.UUID) error
}

type slotAdminCommandsImpl struct {
	uow         shared.UnitOfWork
	slotQueries queries.SlotQueries
	clock       clock.Clock
}

func NewSlotAdminCommands(uow shared.UnitOfWork, slotQueries queries.SlotQueries, clk clock.Clock) SlotAdminCommands {
	return &slotAdminCommandsImpl{uow: uow, slotQueries: slotQueries, clock: clk}
}

func (c *slotAdminCommandsImpl) Create(ctx context.Context, input SlotInput) (*queries.SlotView, error) {
	s, err := buildSlot(input)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSlotInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Slots().Create(ctx, tx.DB(), s); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.slotQueries.GetByID(ctx, s.ID())
}

func (c *slotAdminCommandsImpl) Update(ctx context.Context, slotID uuid.UUID, input SlotInput) (*queries.SlotView, error) {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Slots().FindForUpdate(ctx, tx.DB(), slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		window, err := slot.NewTimeWindow(input.StartsAt, input.EndsAt)
		if err != nil {
			return errs.Mark(err, ErrInvalidSlotInput)
		}
		price, err := slot.NewMoney(input.PriceCents)
		if err != nil {
			return errs.Mark(err, ErrInvalidSlotInput)
		}
		if err := current.ChangeCapacity(input.MaxCapacity); err != nil {
			if errors.Is(err, slot.ErrCapacityBelowHeld) {
				return ErrCapacityBelowHeld
			}
			return errs.Mark(err, ErrInvalidSlotInput)
		}

		updated := slot.ReconstructSlot(
			current.ID(), input.Kind, input.ExamDate, window, price,
			input.MaxCapacity, current.CurrentBookings(), current.IsAvailable(),
			input.AbsoluteExpiry, input.HoldDuration,
			input.Authority, input.Location,
			current.CreatedAt(), now,
		)
		if err := tx.Slots().UpdateDetails(ctx, tx.DB(), updated, now); err != nil {
			if infra.IsKind(err, infra.KindPreconditionFailed) {
				return ErrCapacityBelowHeld
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.slotQueries.GetByID(ctx, slotID)
}

func (c *slotAdminCommandsImpl) Close(ctx context.Context, slotID uuid.UUID) error {
	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Slots().Close(ctx, tx.DB(), slotID, now); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *slotAdminCommandsImpl) Delete(ctx context.Context, slotID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Slots().Delete(ctx, tx.DB(), slotID); err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return ErrSlotNotFound
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrSlotHasPurchases
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}

func (c *slotAdminCommandsImpl) CancelPurchase(ctx context.Context, purchaseID uuid.UUID) error {
	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slotID, err := tx.Purchases().MarkCancelled(ctx, tx.DB(), purchaseID, now)
		if err != nil {
			return err
		}
		return tx.Slots().Release(ctx, tx.DB(), slotID, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return ErrAlreadyResolved
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrPurchaseNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func buildSlot(input SlotInput) (*slot.Slot, error) {
	window, err := slot.NewTimeWindow(input.StartsAt, input.EndsAt)
	if err != nil {
		return nil, err
	}
	price, err := slot.NewMoney(input.PriceCents)
	if err != nil {
		return nil, err
	}
	return slot.NewSlot(
		input.Kind, input.ExamDate, window, price, input.MaxCapacity,
		input.AbsoluteExpiry, input.HoldDuration,
		input.Authority, input.Location,
	)
}
