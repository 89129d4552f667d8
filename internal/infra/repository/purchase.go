package repository

import (
	"context"
	"time"

	"examgate/internal/domain/purchase"
	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PurchaseRepository struct{}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{}
}

const purchaseColumns = `id, slot_id, applicant_id, status, hold_expires_at,
	validity_expires_at, voucher_code, payment_ref, created_at, updated_at`

// Create inserts a purchase in purchased status. A partial unique index on
// (slot_id, applicant_id) over non-terminal statuses rejects a second live
// claim by the same applicant.
func (r *PurchaseRepository) Create(ctx context.Context, dbtx db.DBTX, p *purchase.Purchase) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO purchases (id, slot_id, applicant_id, status, hold_expires_at,
			validity_expires_at, payment_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID(), p.SlotID(), p.ApplicantID(), p.Status().String(),
		p.HoldExpiresAt(), p.ValidityExpiresAt(), p.PaymentRef(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("active purchase already exists for slot and applicant", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create purchase", err)
	}
	return nil
}

// ApproveAndIssue performs the purchased→approved transition and stamps the
// voucher code in one statement, so a purchase can never be approved
// without a code. A unique-violation on the code column means a generator
// collision; callers retry with a fresh code.
func (r *PurchaseRepository) ApproveAndIssue(ctx context.Context, dbtx db.DBTX, id uuid.UUID, code string, now time.Time) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE purchases
		SET status = $3, voucher_code = $2, updated_at = $4
		WHERE id = $1 AND status = $5 AND voucher_code IS NULL`,
		id, code, purchase.StatusApproved.String(), now, purchase.StatusPurchased.String(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("voucher code collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to approve purchase", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("purchase not in purchased status", infra.KindPreconditionFailed)
	}
	return nil
}

// MarkCancelled moves purchased→cancelled and returns the slot owning the
// released unit. The status guard makes the call safe against a concurrent
// sweeper tick or duplicate webhook: only one caller's guard matches.
func (r *PurchaseRepository) MarkCancelled(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) (uuid.UUID, error) {
	var slotID uuid.UUID
	err := dbtx.QueryRow(ctx, `
		UPDATE purchases
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
		RETURNING slot_id`,
		id, purchase.StatusCancelled.String(), now, purchase.StatusPurchased.String(),
	).Scan(&slotID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.NewRepoErr("purchase not in purchased status", infra.KindPreconditionFailed)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to cancel purchase", err)
	}
	return slotID, nil
}

// MarkUsed moves approved→used when a booking consumes the voucher.
func (r *PurchaseRepository) MarkUsed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE purchases
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`,
		id, purchase.StatusUsed.String(), now, purchase.StatusApproved.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark purchase used", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("purchase not in approved status", infra.KindPreconditionFailed)
	}
	return nil
}

// FindStatus reads the current status, used to classify a failed
// conditional transition after the fact.
func (r *PurchaseRepository) FindStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (purchase.Status, error) {
	var status string
	err := dbtx.QueryRow(ctx, `SELECT status FROM purchases WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.NewRepoErr("purchase not found", infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to load purchase status", err)
	}
	return purchase.Status(status), nil
}

// FindByCodeForUpdate locks the purchase row behind a voucher code for the
// duration of the redemption transaction, serializing double redeems.
func (r *PurchaseRepository) FindByCodeForUpdate(ctx context.Context, dbtx db.DBTX, code string) (*purchase.Purchase, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE voucher_code = $1 FOR UPDATE`, code)
	p, err := scanPurchase(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr("voucher code not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load purchase by code", err)
	}
	return p, nil
}

// CancelHoldExpired cancels every purchased-status purchase whose hold has
// run out and hands the capacity back to the owning slots, all in one
// statement so a crashed sweep never half-applies.
func (r *PurchaseRepository) CancelHoldExpired(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	return r.sweepTransition(ctx, dbtx, `
		WITH moved AS (
			UPDATE purchases
			SET status = 'cancelled', updated_at = $1
			WHERE status = 'purchased'
			  AND hold_expires_at IS NOT NULL
			  AND hold_expires_at <= $1
			RETURNING slot_id
		),
		counts AS (
			SELECT slot_id, COUNT(*) AS n FROM moved GROUP BY slot_id
		),
		released AS (
			UPDATE slots s
			SET current_bookings = GREATEST(s.current_bookings - c.n, 0),
			    is_available = (s.closed_at IS NULL AND s.ends_at > $1
			        AND (s.absolute_expiry IS NULL OR s.absolute_expiry > $1)),
			    updated_at = $1
			FROM counts c
			WHERE s.id = c.slot_id
			RETURNING s.id
		)
		SELECT COUNT(*) FROM moved`,
		now,
	)
}

// ExpireValidityPassed retires approved-but-unredeemed purchases whose
// validity window closed, releasing their capacity the same way.
func (r *PurchaseRepository) ExpireValidityPassed(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	return r.sweepTransition(ctx, dbtx, `
		WITH moved AS (
			UPDATE purchases
			SET status = 'expired', updated_at = $1
			WHERE status = 'approved'
			  AND validity_expires_at <= $1
			RETURNING slot_id
		),
		counts AS (
			SELECT slot_id, COUNT(*) AS n FROM moved GROUP BY slot_id
		),
		released AS (
			UPDATE slots s
			SET current_bookings = GREATEST(s.current_bookings - c.n, 0),
			    is_available = (s.closed_at IS NULL AND s.ends_at > $1
			        AND (s.absolute_expiry IS NULL OR s.absolute_expiry > $1)),
			    updated_at = $1
			FROM counts c
			WHERE s.id = c.slot_id
			RETURNING s.id
		)
		SELECT COUNT(*) FROM moved`,
		now,
	)
}

func (r *PurchaseRepository) sweepTransition(ctx context.Context, dbtx db.DBTX, sql string, now time.Time) (int64, error) {
	var n int64
	if err := dbtx.QueryRow(ctx, sql, now).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to sweep purchases", err)
	}
	return n, nil
}

type purchaseRow interface {
	Scan(dest ...any) error
}

func scanPurchase(row purchaseRow) (*purchase.Purchase, error) {
	var (
		id, slotID, applicantID  uuid.UUID
		status                   string
		holdExpiresAt            *time.Time
		validityExpiresAt        time.Time
		voucherCode, paymentRef  *string
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &slotID, &applicantID, &status, &holdExpiresAt,
		&validityExpiresAt, &voucherCode, &paymentRef, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return purchase.ReconstructPurchase(
		id, slotID, applicantID, purchase.Status(status),
		holdExpiresAt, validityExpiresAt, voucherCode, paymentRef,
		createdAt, updatedAt,
	), nil
}
