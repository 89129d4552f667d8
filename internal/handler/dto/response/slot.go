package response

import (
	"time"

	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID              uuid.UUID  `json:"id"`
	Kind            string     `json:"kind"`
	ExamDate        time.Time  `json:"examDate"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          time.Time  `json:"endsAt"`
	PriceCents      int64      `json:"priceCents"`
	MaxCapacity     int32      `json:"maxCapacity"`
	RemainingSeats  int32      `json:"remainingSeats"`
	IsAvailable     bool       `json:"isAvailable"`
	AbsoluteExpiry  *time.Time `json:"absoluteExpiry,omitempty"`
	HoldMinutes     *int32     `json:"holdMinutes,omitempty"`
	Authority       string     `json:"authority"`
	Location        string     `json:"location"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromSlotView(rm *queries.SlotView) *SlotResponse {
	remaining := rm.MaxCapacity - rm.CurrentBookings
	if remaining < 0 {
		remaining = 0
	}
	return &SlotResponse{
		ID:             rm.ID,
		Kind:           rm.Kind,
		ExamDate:       rm.ExamDate,
		StartsAt:       rm.StartsAt,
		EndsAt:         rm.EndsAt,
		PriceCents:     rm.PriceCents,
		MaxCapacity:    rm.MaxCapacity,
		RemainingSeats: remaining,
		IsAvailable:    rm.IsAvailable,
		AbsoluteExpiry: rm.AbsoluteExpiry,
		HoldMinutes:    rm.HoldMinutes,
		Authority:      rm.Authority,
		Location:       rm.Location,
		CreatedAt:      rm.CreatedAt,
		UpdatedAt:      rm.UpdatedAt,
	}
}
