package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SlotView struct {
	ID              uuid.UUID  `json:"id"`
	Kind            string     `json:"kind"`
	ExamDate        time.Time  `json:"exam_date"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	PriceCents      int64      `json:"price_cents"`
	MaxCapacity     int32      `json:"max_capacity"`
	CurrentBookings int32      `json:"current_bookings"`
	IsAvailable     bool       `json:"is_available"`
	AbsoluteExpiry  *time.Time `json:"absolute_expiry,omitempty"`
	HoldMinutes     *int32     `json:"hold_minutes,omitempty"`
	Authority       string     `json:"authority"`
	Location        string     `json:"location"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type PurchaseView struct {
	ID                uuid.UUID  `json:"id"`
	SlotID            uuid.UUID  `json:"slot_id"`
	ApplicantID       uuid.UUID  `json:"applicant_id"`
	Status            string     `json:"status"`
	HoldExpiresAt     *time.Time `json:"hold_expires_at,omitempty"`
	ValidityExpiresAt time.Time  `json:"validity_expires_at"`
	VoucherCode       *string    `json:"voucher_code,omitempty"`
	PaymentRef        *string    `json:"payment_ref,omitempty"`
	Authority         string     `json:"authority"`
	ExamDate          time.Time  `json:"exam_date"`
	StartsAt          time.Time  `json:"starts_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type PurchaseListItem struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slot_id"`
	Status     string    `json:"status"`
	Authority  string    `json:"authority"`
	ExamDate   time.Time `json:"exam_date"`
	HasVoucher bool      `json:"has_voucher"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingView struct {
	ID          uuid.UUID `json:"id"`
	PurchaseID  uuid.UUID `json:"purchase_id"`
	FullName    string    `json:"full_name"`
	Authority   string    `json:"authority"`
	Location    string    `json:"location"`
	ExamDate    time.Time `json:"exam_date"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	FeeCents    int64     `json:"fee_cents"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}
