package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"examgate/internal/domain/purchase"
	"examgate/internal/infra"
	"examgate/internal/pkg/clock"
	"examgate/internal/pkg/errs"
	"examgate/internal/pkg/vouchercode"
	"examgate/internal/usecase/queries"
	"examgate/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound            = errs.New("slot not found")
	ErrSlotUnavailable         = errs.New("slot unavailable")
	ErrDuplicatePurchase       = errs.New("active purchase already exists for this slot")
	ErrPurchaseNotFound        = errs.New("purchase not found")
	ErrAlreadyResolved         = errs.New("purchase already resolved")
	ErrVoucherIssueFailed      = errs.New("voucher code issuance failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// PaymentOutcome is the verdict delivered by the external payment
// authority.
type PaymentOutcome string

const (
	OutcomeApproved PaymentOutcome = "approved"
	OutcomeRejected PaymentOutcome = "rejected"
)

func (o PaymentOutcome) IsValid() bool {
	return o == OutcomeApproved || o == OutcomeRejected
}

type OpenPurchaseParams struct {
	SlotID      uuid.UUID
	ApplicantID uuid.UUID
	PaymentRef  *string
}

type PurchaseCommands interface {
	// Open admits the applicant through the capacity gate and creates the
	// purchase atomically: either both the counter increment and the
	// purchase row commit, or neither does.
	Open(ctx context.Context, params OpenPurchaseParams) (*queries.PurchaseView, error)
	// ResolvePayment is the payment authority webhook target. Duplicate
	// deliveries are tolerated: any call against a purchase that has left
	// purchased status fails with ErrAlreadyResolved and releases nothing.
	ResolvePayment(ctx context.Context, purchaseID uuid.UUID, outcome PaymentOutcome) error
}

type purchaseCommandsImpl struct {
	uow             shared.UnitOfWork
	purchaseQueries queries.PurchaseQueries
	codes           *vouchercode.Generator
	codeAttempts    int
	clock           clock.Clock
}

func NewPurchaseCommands(
	uow shared.UnitOfWork,
	purchaseQueries queries.PurchaseQueries,
	codes *vouchercode.Generator,
	codeAttempts int,
	clk clock.Clock,
) PurchaseCommands {
	if codeAttempts <= 0 {
		codeAttempts = 5
	}
	return &purchaseCommandsImpl{
		uow:             uow,
		purchaseQueries: purchaseQueries,
		codes:           codes,
		codeAttempts:    codeAttempts,
		clock:           clk,
	}
}

func (c *purchaseCommandsImpl) Open(ctx context.Context, params OpenPurchaseParams) (*queries.PurchaseView, error) {
	now := c.clock.Now()
	var purchaseID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slotEntity, err := tx.Slots().Reserve(ctx, tx.DB(), params.SlotID, now)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return ErrSlotNotFound
			case infra.IsKind(err, infra.KindPreconditionFailed):
				return ErrSlotUnavailable
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		p := purchase.NewPurchase(
			slotEntity.ID(),
			params.ApplicantID,
			slotEntity.HoldDeadline(now),
			slotEntity.ValidityDeadline(),
			params.PaymentRef,
		)

		if err := tx.Purchases().Create(ctx, tx.DB(), p); err != nil {
			// Rolling back also undoes the capacity increment.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicatePurchase
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		purchaseID = p.ID()
		return c.notify(ctx, tx, "purchase_opened", p.ID(), now)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.purchaseQueries.GetByIDSystem(ctx, purchaseID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *purchaseCommandsImpl) ResolvePayment(ctx context.Context, purchaseID uuid.UUID, outcome PaymentOutcome) error {
	switch outcome {
	case OutcomeApproved:
		return c.approve(ctx, purchaseID)
	case OutcomeRejected:
		return c.reject(ctx, purchaseID)
	default:
		return errs.New("invalid payment outcome")
	}
}

// approve performs purchased→approved with voucher issuance as one atomic
// step. A code collision (unique index on voucher_code) retries with a
// fresh code; the purchase stays purchased if every attempt fails.
func (c *purchaseCommandsImpl) approve(ctx context.Context, purchaseID uuid.UUID) error {
	now := c.clock.Now()

	for attempt := 0; attempt < c.codeAttempts; attempt++ {
		code, err := c.codes.Generate()
		if err != nil {
			return errs.Mark(err, ErrVoucherIssueFailed)
		}

		err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Purchases().ApproveAndIssue(ctx, tx.DB(), purchaseID, code, now); err != nil {
				return err
			}
			return c.notify(ctx, tx, "purchase_approved", purchaseID, now)
		})
		if err == nil {
			return nil
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Warn("voucher code collision, retrying", "purchase_id", purchaseID, "attempt", attempt+1)
			continue
		}
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return c.classifyResolveConflict(ctx, purchaseID)
		}
		return err
	}

	return ErrVoucherIssueFailed
}

func (c *purchaseCommandsImpl) reject(ctx context.Context, purchaseID uuid.UUID) error {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		slotID, err := tx.Purchases().MarkCancelled(ctx, tx.DB(), purchaseID, now)
		if err != nil {
			return err
		}
		if err := tx.Slots().Release(ctx, tx.DB(), slotID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.notify(ctx, tx, "purchase_cancelled", purchaseID, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindPreconditionFailed) {
			return c.classifyResolveConflict(ctx, purchaseID)
		}
		return err
	}
	return nil
}

// classifyResolveConflict distinguishes "never existed" from "a previous
// resolution or sweep got here first" after a guard miss. The latter is the
// double-release trap: a hold timeout and a late webhook must not both free
// the same capacity unit, so a conflicting resolution is reported without
// touching the counter.
func (c *purchaseCommandsImpl) classifyResolveConflict(ctx context.Context, purchaseID uuid.UUID) error {
	result := ErrAlreadyResolved
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Purchases().FindStatus(ctx, tx.DB(), purchaseID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				result = ErrPurchaseNotFound
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return result
}

func (c *purchaseCommandsImpl) notify(ctx context.Context, tx shared.Tx, topic string, purchaseID uuid.UUID, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"purchase_id": purchaseID,
		"type":        topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
