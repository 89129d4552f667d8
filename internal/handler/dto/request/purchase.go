package request

import (
	"strings"

	"github.com/google/uuid"
)

type OpenPurchaseRequest struct {
	SlotID     uuid.UUID `json:"slot_id" binding:"required"`
	PaymentRef *string   `json:"payment_ref,omitempty"`
}

func (r OpenPurchaseRequest) GetPaymentRef() *string {
	if r.PaymentRef == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PaymentRef)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// PaymentWebhookRequest is the payload delivered by the payment authority.
type PaymentWebhookRequest struct {
	PurchaseID uuid.UUID `json:"purchase_id" binding:"required"`
	Outcome    string    `json:"outcome" binding:"required,oneof=approved rejected"`
}
