package request

import (
	"strings"
	"time"

	"examgate/internal/domain/slot"
	"examgate/internal/usecase/commands"
)

type SlotRequest struct {
	Kind           string     `json:"kind" binding:"required"`
	ExamDate       time.Time  `json:"exam_date" binding:"required"`
	StartsAt       time.Time  `json:"starts_at" binding:"required"`
	EndsAt         time.Time  `json:"ends_at" binding:"required"`
	PriceCents     int64      `json:"price_cents" binding:"min=0"`
	MaxCapacity    int32      `json:"max_capacity" binding:"required,min=1"`
	AbsoluteExpiry *time.Time `json:"absolute_expiry,omitempty"`
	HoldMinutes    *int32     `json:"hold_minutes,omitempty"`
	Authority      string     `json:"authority" binding:"required"`
	Location       string     `json:"location" binding:"required"`
}

func (r SlotRequest) ToInput() commands.SlotInput {
	var hold *time.Duration
	if r.HoldMinutes != nil {
		d := time.Duration(*r.HoldMinutes) * time.Minute
		hold = &d
	}
	return commands.SlotInput{
		Kind:           slot.Kind(strings.TrimSpace(r.Kind)),
		ExamDate:       r.ExamDate,
		StartsAt:       r.StartsAt,
		EndsAt:         r.EndsAt,
		PriceCents:     r.PriceCents,
		MaxCapacity:    r.MaxCapacity,
		AbsoluteExpiry: r.AbsoluteExpiry,
		HoldDuration:   hold,
		Authority:      strings.TrimSpace(r.Authority),
		Location:       strings.TrimSpace(r.Location),
	}
}
