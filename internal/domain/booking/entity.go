package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("applicant name required")
	ErrEmptyContact = errors.New("contact details required")
)

type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusPassIssued Status = "pass_issued"
)

func (s Status) String() string {
	return string(s)
}

// Applicant is the identity and contact block submitted at redemption.
type Applicant struct {
	FullName string
	Email    string
	Phone    string
}

func (a Applicant) Validate() error {
	if strings.TrimSpace(a.FullName) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(a.Email) == "" && strings.TrimSpace(a.Phone) == "" {
		return ErrEmptyContact
	}
	return nil
}

// ExamSnapshot freezes the slot details at redemption time so later slot
// edits never alter a confirmed booking.
type ExamSnapshot struct {
	Authority string
	Location  string
	ExamDate  time.Time
	StartsAt  time.Time
	EndsAt    time.Time
	FeeCents  int64
}

// ExamBooking is the terminal consumption of a voucher. Exactly one may
// exist per purchase, enforced by a unique index on the purchase reference.
type ExamBooking struct {
	id          uuid.UUID
	purchaseID  uuid.UUID
	applicant   Applicant
	snapshot    ExamSnapshot
	status      Status
	submittedAt time.Time
}

func NewExamBooking(purchaseID uuid.UUID, applicant Applicant, snapshot ExamSnapshot, submittedAt time.Time) (*ExamBooking, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	return &ExamBooking{
		id:          uuid.New(),
		purchaseID:  purchaseID,
		applicant:   applicant,
		snapshot:    snapshot,
		status:      StatusSubmitted,
		submittedAt: submittedAt,
	}, nil
}

func ReconstructExamBooking(
	id, purchaseID uuid.UUID,
	applicant Applicant,
	snapshot ExamSnapshot,
	status Status,
	submittedAt time.Time,
) *ExamBooking {
	return &ExamBooking{
		id:          id,
		purchaseID:  purchaseID,
		applicant:   applicant,
		snapshot:    snapshot,
		status:      status,
		submittedAt: submittedAt,
	}
}

func (b *ExamBooking) ID() uuid.UUID          { return b.id }
func (b *ExamBooking) PurchaseID() uuid.UUID  { return b.purchaseID }
func (b *ExamBooking) Applicant() Applicant   { return b.applicant }
func (b *ExamBooking) Snapshot() ExamSnapshot { return b.snapshot }
func (b *ExamBooking) Status() Status         { return b.status }
func (b *ExamBooking) SubmittedAt() time.Time { return b.submittedAt }
