package repository

import (
	"context"
	"time"

	"examgate/internal/domain/slot"
	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// SlotRepository owns every write to the slots table. The booking counter
// is moved exclusively through Reserve and the release statements so the
// 0 <= current_bookings <= max_capacity invariant can never be broken by a
// read-then-write race.
type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

const slotColumns = `id, kind, exam_date, starts_at, ends_at, price_cents,
	max_capacity, current_bookings, is_available, absolute_expiry,
	hold_minutes, authority, location, created_at, updated_at`

func (r *SlotRepository) Create(ctx context.Context, dbtx db.DBTX, s *slot.Slot) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO slots (id, kind, exam_date, starts_at, ends_at, price_cents,
			max_capacity, current_bookings, is_available, absolute_expiry,
			hold_minutes, authority, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, true, $8, $9, $10, $11)`,
		s.ID(), s.Kind().String(), s.ExamDate(), s.Window().Start(), s.Window().End(),
		s.Price().Cents(), s.MaxCapacity(), s.AbsoluteExpiry(),
		holdMinutes(s.HoldDuration()), s.Authority(), s.Location(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

// Reserve is the capacity gate: a single conditional UPDATE that admits the
// caller only while the slot is open, unexpired and under capacity. Two
// callers racing for the last unit serialize on the row; the loser's guard
// no longer matches and the statement touches zero rows.
func (r *SlotRepository) Reserve(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) (*slot.Slot, error) {
	row := dbtx.QueryRow(ctx, `
		UPDATE slots
		SET current_bookings = current_bookings + 1,
		    is_available = (current_bookings + 1 < max_capacity),
		    updated_at = $2
		WHERE id = $1
		  AND is_available
		  AND current_bookings < max_capacity
		  AND ends_at > $2
		  AND (absolute_expiry IS NULL OR absolute_expiry > $2)
		RETURNING `+slotColumns,
		slotID, now,
	)

	s, err := scanSlot(row)
	if err == nil {
		return s, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to reserve slot capacity", err)
	}

	// Guard did not match: tell a missing slot apart from an exhausted or
	// closed one.
	var exists bool
	if err := dbtx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM slots WHERE id = $1)`, slotID).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr("failed to check slot existence", err)
	}
	if !exists {
		return nil, infra.NewRepoErr("slot not found", infra.KindNotFound)
	}
	return nil, infra.NewRepoErr("slot not admissible", infra.KindPreconditionFailed)
}

// Release hands one capacity unit back, flooring at zero. Availability is
// restored only when the slot was closed purely because it filled up; a
// slot closed by the sweeper or an administrator (closed_at set) stays
// closed for good.
func (r *SlotRepository) Release(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) error {
	_, err := dbtx.Exec(ctx, `
		UPDATE slots
		SET current_bookings = GREATEST(current_bookings - 1, 0),
		    is_available = (closed_at IS NULL
		        AND ends_at > $2
		        AND (absolute_expiry IS NULL OR absolute_expiry > $2)),
		    updated_at = $2
		WHERE id = $1`,
		slotID, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot capacity", err)
	}
	return nil
}

// Close marks the slot unavailable permanently (manual close or the
// event-driven closer). Idempotent: closing a closed slot is a no-op.
func (r *SlotRepository) Close(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID, now time.Time) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE slots
		SET is_available = false,
		    closed_at = COALESCE(closed_at, $2),
		    updated_at = $2
		WHERE id = $1`,
		slotID, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to close slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("slot not found", infra.KindNotFound)
	}
	return nil
}

// CloseTimedOut shuts every slot whose window or absolute expiry has
// passed. Closure is monotonic, so rerunning the statement is harmless.
func (r *SlotRepository) CloseTimedOut(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	tag, err := dbtx.Exec(ctx, `
		UPDATE slots
		SET is_available = false,
		    closed_at = COALESCE(closed_at, $1),
		    updated_at = $1
		WHERE is_available
		  AND (ends_at <= $1 OR (absolute_expiry IS NOT NULL AND absolute_expiry <= $1))`,
		now,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to close timed-out slots", err)
	}
	return tag.RowsAffected(), nil
}

// FindForUpdate loads a slot under a row lock for admin edits.
func (r *SlotRepository) FindForUpdate(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID) (*slot.Slot, error) {
	row := dbtx.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1 FOR UPDATE`, slotID)
	s, err := scanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr("slot not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load slot", err)
	}
	return s, nil
}

// UpdateDetails persists admin edits. The capacity guard re-checks against
// the live counter so a concurrent reservation cannot slip under a shrink.
func (r *SlotRepository) UpdateDetails(ctx context.Context, dbtx db.DBTX, s *slot.Slot, now time.Time) error {
	tag, err := dbtx.Exec(ctx, `
		UPDATE slots
		SET exam_date = $2, starts_at = $3, ends_at = $4, price_cents = $5,
		    max_capacity = $6, absolute_expiry = $7, hold_minutes = $8,
		    authority = $9, location = $10, updated_at = $11
		WHERE id = $1 AND current_bookings <= $6`,
		s.ID(), s.ExamDate(), s.Window().Start(), s.Window().End(), s.Price().Cents(),
		s.MaxCapacity(), s.AbsoluteExpiry(), holdMinutes(s.HoldDuration()),
		s.Authority(), s.Location(), now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("slot capacity below current bookings", infra.KindPreconditionFailed)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, dbtx db.DBTX, slotID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM slots WHERE id = $1`, slotID)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("slot has purchases", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("slot not found", infra.KindNotFound)
	}
	return nil
}

type slotRow interface {
	Scan(dest ...any) error
}

func scanSlot(row slotRow) (*slot.Slot, error) {
	var (
		id                           uuid.UUID
		kind                         string
		examDate                     time.Time
		startsAt, endsAt             time.Time
		priceCents                   int64
		maxCapacity, currentBookings int32
		isAvailable                  bool
		absoluteExpiry               *time.Time
		holdMins                     *int32
		authority, location          string
		createdAt, updatedAt         time.Time
	)
	if err := row.Scan(&id, &kind, &examDate, &startsAt, &endsAt, &priceCents,
		&maxCapacity, &currentBookings, &isAvailable, &absoluteExpiry,
		&holdMins, &authority, &location, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	window, err := slot.NewTimeWindow(startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	price, err := slot.NewMoney(priceCents)
	if err != nil {
		return nil, err
	}

	var hold *time.Duration
	if holdMins != nil {
		d := time.Duration(*holdMins) * time.Minute
		hold = &d
	}

	return slot.ReconstructSlot(
		id, slot.Kind(kind), examDate, window, price,
		maxCapacity, currentBookings, isAvailable,
		absoluteExpiry, hold, authority, location,
		createdAt, updatedAt,
	), nil
}

func holdMinutes(d *time.Duration) *int32 {
	if d == nil {
		return nil
	}
	m := int32(*d / time.Minute)
	return &m
}
