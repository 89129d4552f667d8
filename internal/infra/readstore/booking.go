package readstore

import (
	"context"

	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := r.db.QueryRow(ctx, `
		SELECT id, purchase_id, full_name, authority, location, exam_date,
		       starts_at, ends_at, fee_cents, status, submitted_at
		FROM exam_bookings
		WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.PurchaseID, &v.FullName, &v.Authority, &v.Location,
		&v.ExamDate, &v.StartsAt, &v.EndsAt, &v.FeeCents, &v.Status, &v.SubmittedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &v, nil
}
