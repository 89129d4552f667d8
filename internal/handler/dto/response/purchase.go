package response

import (
	"time"

	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	ID                uuid.UUID  `json:"id"`
	SlotID            uuid.UUID  `json:"slotId"`
	Status            string     `json:"status"`
	HoldExpiresAt     *time.Time `json:"holdExpiresAt,omitempty"`
	ValidityExpiresAt time.Time  `json:"validityExpiresAt"`
	VoucherCode       *string    `json:"voucherCode,omitempty"`
	Authority         string     `json:"authority"`
	ExamDate          time.Time  `json:"examDate"`
	StartsAt          time.Time  `json:"startsAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type PurchaseListResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slotId"`
	Status     string    `json:"status"`
	Authority  string    `json:"authority"`
	ExamDate   time.Time `json:"examDate"`
	HasVoucher bool      `json:"hasVoucher"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromPurchaseView(rm *queries.PurchaseView) *PurchaseResponse {
	return &PurchaseResponse{
		ID:                rm.ID,
		SlotID:            rm.SlotID,
		Status:            rm.Status,
		HoldExpiresAt:     rm.HoldExpiresAt,
		ValidityExpiresAt: rm.ValidityExpiresAt,
		VoucherCode:       rm.VoucherCode,
		Authority:         rm.Authority,
		ExamDate:          rm.ExamDate,
		StartsAt:          rm.StartsAt,
		CreatedAt:         rm.CreatedAt,
		UpdatedAt:         rm.UpdatedAt,
	}
}

func FromPurchaseListItem(rm *queries.PurchaseListItem) *PurchaseListResponse {
	return &PurchaseListResponse{
		ID:         rm.ID,
		SlotID:     rm.SlotID,
		Status:     rm.Status,
		Authority:  rm.Authority,
		ExamDate:   rm.ExamDate,
		HasVoucher: rm.HasVoucher,
		CreatedAt:  rm.CreatedAt,
	}
}
