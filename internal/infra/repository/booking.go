package repository

import (
	"context"

	"examgate/internal/domain/booking"
	"examgate/internal/infra"
	"examgate/internal/infra/db"
	"examgate/internal/pkg/pgconv"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Create inserts the exam booking. purchase_id carries a unique index, so
// the second of two racing redemptions fails here with a duplicate-key
// error rather than producing a second booking.
func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.ExamBooking) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO exam_bookings (id, purchase_id, full_name, email, phone,
			authority, location, exam_date, starts_at, ends_at, fee_cents,
			status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID(), b.PurchaseID(),
		b.Applicant().FullName, b.Applicant().Email, b.Applicant().Phone,
		b.Snapshot().Authority, b.Snapshot().Location, b.Snapshot().ExamDate,
		b.Snapshot().StartsAt, b.Snapshot().EndsAt, b.Snapshot().FeeCents,
		b.Status().String(), b.SubmittedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("purchase already consumed by a booking", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create exam booking", err)
	}
	return nil
}
