package readstore

import (
	"context"
	"time"

	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

const slotViewColumns = `id, kind, exam_date, starts_at, ends_at, price_cents,
	max_capacity, current_bookings, is_available, absolute_expiry,
	hold_minutes, authority, location, created_at, updated_at`

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+slotViewColumns+` FROM slots WHERE id = $1`, id)
	view, err := scanSlotView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return view, nil
}

func (r *SlotReadStore) FindOpen(ctx context.Context, kind *string, limit int32) ([]*queries.SlotView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+slotViewColumns+`
		FROM slots
		WHERE is_available
		  AND current_bookings < max_capacity
		  AND ends_at > now()
		  AND (absolute_expiry IS NULL OR absolute_expiry > now())
		  AND ($1::text IS NULL OR kind = $1)
		ORDER BY starts_at
		LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open slots", err)
	}
	defer rows.Close()

	var result []*queries.SlotView
	for rows.Next() {
		view, err := scanSlotView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}
	return result, nil
}

func scanSlotView(row pgx.Row) (*queries.SlotView, error) {
	var v queries.SlotView
	var absoluteExpiry *time.Time
	var holdMinutes *int32
	if err := row.Scan(&v.ID, &v.Kind, &v.ExamDate, &v.StartsAt, &v.EndsAt,
		&v.PriceCents, &v.MaxCapacity, &v.CurrentBookings, &v.IsAvailable,
		&absoluteExpiry, &holdMinutes, &v.Authority, &v.Location,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.AbsoluteExpiry = absoluteExpiry
	v.HoldMinutes = holdMinutes
	return &v, nil
}
