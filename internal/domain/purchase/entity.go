package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStateTransition = errors.New("invalid purchase state transition")
	ErrAlreadyIssued          = errors.New("voucher code already issued")
	ErrMissingCode            = errors.New("voucher code required for approval")
	ErrHoldNotElapsed         = errors.New("hold deadline has not passed")
	ErrValidityNotElapsed     = errors.New("validity deadline has not passed")
)

// Purchase is one applicant's claim on one unit of slot capacity, tracked
// from payment hold through voucher issuance to consumption.
type Purchase struct {
	id                uuid.UUID
	slotID            uuid.UUID
	applicantID       uuid.UUID
	status            Status
	holdExpiresAt     *time.Time
	validityExpiresAt time.Time
	voucherCode       *string
	paymentRef        *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPurchase opens a purchase in purchased status. holdExpiresAt is nil
// when the slot grants an unlimited hold.
func NewPurchase(
	slotID, applicantID uuid.UUID,
	holdExpiresAt *time.Time,
	validityExpiresAt time.Time,
	paymentRef *string,
) *Purchase {
	return &Purchase{
		id:                uuid.New(),
		slotID:            slotID,
		applicantID:       applicantID,
		status:            StatusPurchased,
		holdExpiresAt:     holdExpiresAt,
		validityExpiresAt: validityExpiresAt,
		paymentRef:        paymentRef,
	}
}

func ReconstructPurchase(
	id, slotID, applicantID uuid.UUID,
	status Status,
	holdExpiresAt *time.Time,
	validityExpiresAt time.Time,
	voucherCode *string,
	paymentRef *string,
	createdAt, updatedAt time.Time,
) *Purchase {
	return &Purchase{
		id:                id,
		slotID:            slotID,
		applicantID:       applicantID,
		status:            status,
		holdExpiresAt:     holdExpiresAt,
		validityExpiresAt: validityExpiresAt,
		voucherCode:       voucherCode,
		paymentRef:        paymentRef,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Approve moves purchased→approved, stamping the voucher code in the same
// step. Approval without a code, or with one already present, is refused so
// a half-issued purchase can never exist.
func (p *Purchase) Approve(code string) error {
	if code == "" {
		return ErrMissingCode
	}
	if p.voucherCode != nil {
		return ErrAlreadyIssued
	}
	if err := p.transitionTo(StatusApproved); err != nil {
		return err
	}
	p.voucherCode = &code
	return nil
}

// Cancel moves purchased→cancelled (payment rejection, hold timeout, or
// admin cancellation). The caller releases the capacity unit.
func (p *Purchase) Cancel() error {
	return p.transitionTo(StatusCancelled)
}

// Use moves approved→used when a booking consumes the voucher. Capacity
// stays held permanently: the exam is now scheduled.
func (p *Purchase) Use() error {
	return p.transitionTo(StatusUsed)
}

// Expire moves approved→expired once the validity deadline has passed with
// no booking. The caller releases the capacity unit.
func (p *Purchase) Expire(now time.Time) error {
	if !now.After(p.validityExpiresAt) {
		return ErrValidityNotElapsed
	}
	return p.transitionTo(StatusExpired)
}

// HoldElapsed reports whether the payment hold has run out. A nil hold
// deadline means the hold never times out.
func (p *Purchase) HoldElapsed(now time.Time) bool {
	return p.holdExpiresAt != nil && now.After(*p.holdExpiresAt)
}

func (p *Purchase) transitionTo(next Status) error {
	if !p.status.canTransitionTo(next) {
		return ErrInvalidStateTransition
	}
	p.status = next
	return nil
}

func (p *Purchase) ID() uuid.UUID               { return p.id }
func (p *Purchase) SlotID() uuid.UUID           { return p.slotID }
func (p *Purchase) ApplicantID() uuid.UUID      { return p.applicantID }
func (p *Purchase) Status() Status              { return p.status }
func (p *Purchase) HoldExpiresAt() *time.Time   { return p.holdExpiresAt }
func (p *Purchase) ValidityExpiresAt() time.Time { return p.validityExpiresAt }
func (p *Purchase) VoucherCode() *string        { return p.voucherCode }
func (p *Purchase) PaymentRef() *string         { return p.paymentRef }
func (p *Purchase) CreatedAt() time.Time        { return p.createdAt }
func (p *Purchase) UpdatedAt() time.Time        { return p.updatedAt }
