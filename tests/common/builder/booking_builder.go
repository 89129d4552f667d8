//go:build unit || e2e

package builder

import (
	"time"

	dombooking "examgate/internal/domain/booking"
	reqdto "examgate/internal/handler/dto/request"
	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	PurchaseID  uuid.UUID
	VoucherCode string
	FullName    string
	Email       string
	Phone       string
	Snapshot    dombooking.ExamSnapshot
}

func NewBookingBuilder() *BookingBuilder {
	examDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		PurchaseID:  uuid.New(),
		VoucherCode: "ABCDEFGHJK",
		FullName:    "Dana Candidate",
		Email:       "dana@example.com",
		Phone:       "+15550100",
		Snapshot: dombooking.ExamSnapshot{
			Authority: "City Driving Authority",
			Location:  "Main Test Center",
			ExamDate:  examDate,
			StartsAt:  examDate.Add(9 * time.Hour),
			EndsAt:    examDate.Add(17 * time.Hour),
			FeeCents:  12500,
		},
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildApplicant() dombooking.Applicant {
	return dombooking.Applicant{
		FullName: b.FullName,
		Email:    b.Email,
		Phone:    b.Phone,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.ExamBooking, error) {
	return dombooking.NewExamBooking(b.PurchaseID, b.BuildApplicant(), b.Snapshot,
		time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))
}

func (b *BookingBuilder) BuildRedeemRequestDTO() reqdto.RedeemVoucherRequest {
	return reqdto.RedeemVoucherRequest{
		VoucherCode: b.VoucherCode,
		FullName:    b.FullName,
		Email:       b.Email,
		Phone:       b.Phone,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          uuid.New(),
		PurchaseID:  b.PurchaseID,
		FullName:    b.FullName,
		Authority:   b.Snapshot.Authority,
		Location:    b.Snapshot.Location,
		ExamDate:    b.Snapshot.ExamDate,
		StartsAt:    b.Snapshot.StartsAt,
		EndsAt:      b.Snapshot.EndsAt,
		FeeCents:    b.Snapshot.FeeCents,
		Status:      "submitted",
		SubmittedAt: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
	}
}
