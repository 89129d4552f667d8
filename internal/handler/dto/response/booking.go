package response

import (
	"time"

	"examgate/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	PurchaseID  uuid.UUID `json:"purchaseId"`
	FullName    string    `json:"fullName"`
	Authority   string    `json:"authority"`
	Location    string    `json:"location"`
	ExamDate    time.Time `json:"examDate"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	FeeCents    int64     `json:"feeCents"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:          rm.ID,
		PurchaseID:  rm.PurchaseID,
		FullName:    rm.FullName,
		Authority:   rm.Authority,
		Location:    rm.Location,
		ExamDate:    rm.ExamDate,
		StartsAt:    rm.StartsAt,
		EndsAt:      rm.EndsAt,
		FeeCents:    rm.FeeCents,
		Status:      rm.Status,
		SubmittedAt: rm.SubmittedAt,
	}
}
