//go:build unit || e2e

package builder

import (
	"time"

	dompurchase "examgate/internal/domain/purchase"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseBuilder struct {
	SlotID            uuid.UUID
	ApplicantID       uuid.UUID
	Status            dompurchase.Status
	HoldExpiresAt     *time.Time
	ValidityExpiresAt time.Time
	VoucherCode       *string
	PaymentRef        *string
}

func NewPurchaseBuilder() *PurchaseBuilder {
	hold := time.Date(2026, 10, 1, 9, 10, 0, 0, time.UTC)
	return &PurchaseBuilder{
		SlotID:            uuid.New(),
		ApplicantID:       uuid.New(),
		Status:            dompurchase.StatusPurchased,
		HoldExpiresAt:     &hold,
		ValidityExpiresAt: time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC),
	}
}

func (b *PurchaseBuilder) With(mutate func(*PurchaseBuilder)) *PurchaseBuilder {
	mutate(b)
	return b
}

func (b *PurchaseBuilder) WithStatus(s dompurchase.Status) *PurchaseBuilder {
	b.Status = s
	return b
}

func (b *PurchaseBuilder) WithVoucherCode(code string) *PurchaseBuilder {
	b.VoucherCode = &code
	return b
}

func (b *PurchaseBuilder) WithoutHold() *PurchaseBuilder {
	b.HoldExpiresAt = nil
	return b
}

func (b *PurchaseBuilder) BuildDomain() *dompurchase.Purchase {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return dompurchase.ReconstructPurchase(
		uuid.New(), b.SlotID, b.ApplicantID, b.Status,
		b.HoldExpiresAt, b.ValidityExpiresAt, b.VoucherCode, b.PaymentRef,
		now, now,
	)
}

func (b *PurchaseBuilder) BuildView() *queries.PurchaseView {
	now := time.Now().UTC()
	return &queries.PurchaseView{
		ID:                uuid.New(),
		SlotID:            b.SlotID,
		ApplicantID:       b.ApplicantID,
		Status:            b.Status.String(),
		HoldExpiresAt:     b.HoldExpiresAt,
		ValidityExpiresAt: b.ValidityExpiresAt,
		VoucherCode:       b.VoucherCode,
		PaymentRef:        b.PaymentRef,
		Authority:         "City Driving Authority",
		ExamDate:          time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		StartsAt:          time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *PurchaseBuilder) BuildListItem() *queries.PurchaseListItem {
	return &queries.PurchaseListItem{
		ID:         uuid.New(),
		SlotID:     b.SlotID,
		Status:     b.Status.String(),
		Authority:  "City Driving Authority",
		ExamDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		HasVoucher: b.VoucherCode != nil,
		CreatedAt:  time.Now().UTC(),
	}
}
