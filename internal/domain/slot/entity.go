package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind       = errors.New("invalid slot kind")
	ErrInvalidCapacity   = errors.New("max capacity must be at least 1")
	ErrCapacityBelowHeld = errors.New("max capacity cannot drop below current bookings")
	ErrSlotClosed        = errors.New("slot is closed")
	ErrSlotExpired       = errors.New("slot time window has passed")
	ErrCapacityExhausted = errors.New("slot capacity exhausted")
	ErrInvalidHold       = errors.New("hold duration must be positive")
)

// Slot is one capacity-limited, time-bound bookable unit. The booking
// counter is only ever moved through the repository's conditional updates;
// the entity mirrors those rules for validation and for unit tests.
type Slot struct {
	id              uuid.UUID
	kind            Kind
	examDate        time.Time
	window          TimeWindow
	price           Money
	maxCapacity     int32
	currentBookings int32
	isAvailable     bool
	absoluteExpiry  *time.Time
	holdDuration    *time.Duration
	authority       string
	location        string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewSlot(
	kind Kind,
	examDate time.Time,
	window TimeWindow,
	price Money,
	maxCapacity int32,
	absoluteExpiry *time.Time,
	holdDuration *time.Duration,
	authority, location string,
) (*Slot, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if maxCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if holdDuration != nil && *holdDuration <= 0 {
		return nil, ErrInvalidHold
	}

	return &Slot{
		id:             uuid.New(),
		kind:           kind,
		examDate:       examDate,
		window:         window,
		price:          price,
		maxCapacity:    maxCapacity,
		isAvailable:    true,
		absoluteExpiry: absoluteExpiry,
		holdDuration:   holdDuration,
		authority:      authority,
		location:       location,
	}, nil
}

func ReconstructSlot(
	id uuid.UUID,
	kind Kind,
	examDate time.Time,
	window TimeWindow,
	price Money,
	maxCapacity, currentBookings int32,
	isAvailable bool,
	absoluteExpiry *time.Time,
	holdDuration *time.Duration,
	authority, location string,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:              id,
		kind:            kind,
		examDate:        examDate,
		window:          window,
		price:           price,
		maxCapacity:     maxCapacity,
		currentBookings: currentBookings,
		isAvailable:     isAvailable,
		absoluteExpiry:  absoluteExpiry,
		holdDuration:    holdDuration,
		authority:       authority,
		location:        location,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// HasExpired reports whether the slot is past its end time or its absolute
// expiry, whichever comes first.
func (s *Slot) HasExpired(now time.Time) bool {
	if s.window.EndedBy(now) {
		return true
	}
	return s.absoluteExpiry != nil && now.After(*s.absoluteExpiry)
}

// CanAdmit is the precondition of the capacity gate. The repository encodes
// the same checks inside a single conditional UPDATE; the entity form exists
// so the rules are testable without a database.
func (s *Slot) CanAdmit(now time.Time) error {
	if !s.isAvailable {
		return ErrSlotClosed
	}
	if s.HasExpired(now) {
		return ErrSlotExpired
	}
	if s.currentBookings >= s.maxCapacity {
		return ErrCapacityExhausted
	}
	return nil
}

// HoldDeadline returns when a purchase opened now would lose its hold, or
// nil when the slot carries no hold duration (unlimited hold).
func (s *Slot) HoldDeadline(now time.Time) *time.Time {
	if s.holdDuration == nil {
		return nil
	}
	d := now.Add(*s.holdDuration)
	return &d
}

// ValidityDeadline is the moment an approved-but-unused voucher for this
// slot becomes worthless: slot end or absolute expiry, whichever is earlier.
func (s *Slot) ValidityDeadline() time.Time {
	if s.absoluteExpiry != nil && s.absoluteExpiry.Before(s.window.End()) {
		return *s.absoluteExpiry
	}
	return s.window.End()
}

// ChangeCapacity guards admin edits: shrinking below the held count would
// retroactively break the counter invariant.
func (s *Slot) ChangeCapacity(newMax int32) error {
	if newMax < 1 {
		return ErrInvalidCapacity
	}
	if newMax < s.currentBookings {
		return ErrCapacityBelowHeld
	}
	s.maxCapacity = newMax
	return nil
}

// Close marks the slot unavailable. Closure is monotonic; there is no
// reopen counterpart for expired or manually closed slots.
func (s *Slot) Close() {
	s.isAvailable = false
}

func (s *Slot) ID() uuid.UUID                { return s.id }
func (s *Slot) Kind() Kind                   { return s.kind }
func (s *Slot) ExamDate() time.Time          { return s.examDate }
func (s *Slot) Window() TimeWindow           { return s.window }
func (s *Slot) Price() Money                 { return s.price }
func (s *Slot) MaxCapacity() int32           { return s.maxCapacity }
func (s *Slot) CurrentBookings() int32       { return s.currentBookings }
func (s *Slot) IsAvailable() bool            { return s.isAvailable }
func (s *Slot) AbsoluteExpiry() *time.Time   { return s.absoluteExpiry }
func (s *Slot) HoldDuration() *time.Duration { return s.holdDuration }
func (s *Slot) Authority() string            { return s.authority }
func (s *Slot) Location() string             { return s.location }
func (s *Slot) CreatedAt() time.Time         { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time         { return s.updatedAt }
