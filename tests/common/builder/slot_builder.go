//go:build unit || e2e

package builder

import (
	"time"

	domslot "examgate/internal/domain/slot"
	reqdto "examgate/internal/handler/dto/request"
	"examgate/internal/usecase/commands"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	Kind           domslot.Kind
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

func NewSlotBuilder() *SlotBuilder {
	examDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	hold := 10 * time.Minute
	return &SlotBuilder{
		Kind:         domslot.KindVoucherExam,
		ExamDate:     examDate,
		StartsAt:     examDate.Add(9 * time.Hour),
		EndsAt:       examDate.Add(17 * time.Hour),
		PriceCents:   12500,
		MaxCapacity:  3,
		HoldDuration: &hold,
		Authority:    "City Driving Authority",
		Location:     "Main Test Center",
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithKind(k domslot.Kind) *SlotBuilder {
	b.Kind = k
	return b
}

func (b *SlotBuilder) WithCapacity(n int32) *SlotBuilder {
	b.MaxCapacity = n
	return b
}

func (b *SlotBuilder) WithWindow(start, end time.Time) *SlotBuilder {
	b.StartsAt = start
	b.EndsAt = end
	return b
}

func (b *SlotBuilder) WithAbsoluteExpiry(t time.Time) *SlotBuilder {
	b.AbsoluteExpiry = &t
	return b
}

func (b *SlotBuilder) WithoutHold() *SlotBuilder {
	b.HoldDuration = nil
	return b
}

func (b *SlotBuilder) BuildDomain() (*domslot.Slot, error) {
	window, err := domslot.NewTimeWindow(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	price, err := domslot.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	return domslot.NewSlot(b.Kind, b.ExamDate, window, price, b.MaxCapacity,
		b.AbsoluteExpiry, b.HoldDuration, b.Authority, b.Location)
}

func (b *SlotBuilder) BuildInput() commands.SlotInput {
	return commands.SlotInput{
		Kind:           b.Kind,
		ExamDate:       b.ExamDate,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
		PriceCents:     b.PriceCents,
		MaxCapacity:    b.MaxCapacity,
		AbsoluteExpiry: b.AbsoluteExpiry,
		HoldDuration:   b.HoldDuration,
		Authority:      b.Authority,
		Location:       b.Location,
	}
}

func (b *SlotBuilder) BuildRequestDTO() reqdto.SlotRequest {
	var holdMinutes *int32
	if b.HoldDuration != nil {
		m := int32(*b.HoldDuration / time.Minute)
		holdMinutes = &m
	}
	return reqdto.SlotRequest{
		Kind:           b.Kind.String(),
		ExamDate:       b.ExamDate,
		StartsAt:       b.StartsAt,
		EndsAt:         b.EndsAt,
		PriceCents:     b.PriceCents,
		MaxCapacity:    b.MaxCapacity,
		AbsoluteExpiry: b.AbsoluteExpiry,
		HoldMinutes:    holdMinutes,
		Authority:      b.Authority,
		Location:       b.Location,
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	now := time.Now().UTC()
	var holdMinutes *int32
	if b.HoldDuration != nil {
		m := int32(*b.HoldDuration / time.Minute)
		holdMinutes = &m
	}
	return &queries.SlotView{
		ID:              uuid.New(),
		Kind:            b.Kind.String(),
		ExamDate:        b.ExamDate,
		StartsAt:        b.StartsAt,
		EndsAt:          b.EndsAt,
		PriceCents:      b.PriceCents,
		MaxCapacity:     b.MaxCapacity,
		CurrentBookings: 0,
		IsAvailable:     true,
		AbsoluteExpiry:  b.AbsoluteExpiry,
		HoldMinutes:     holdMinutes,
		Authority:       b.Authority,
		Location:        b.Location,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
