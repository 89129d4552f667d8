package queries

import (
	"context"

	"examgate/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrForbidden = errs.New("purchase belongs to another applicant")

type PurchaseQueries interface {
	// GetByID returns the purchase only to its owner; the voucher code is a
	// bearer credential and must not leak to other applicants.
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*PurchaseView, error)
	// GetByIDSystem skips the ownership check for internal callers (payment
	// webhook handling, notifications).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]*PurchaseListItem, error)
}

type PurchaseReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	FindByApplicant(ctx context.Context, applicantID uuid.UUID, limit int32) ([]*PurchaseListItem, error)
}

type purchaseQueriesImpl struct {
	store PurchaseReadStore
}

func NewPurchaseQueries(store PurchaseReadStore) PurchaseQueries {
	return &purchaseQueriesImpl{store: store}
}

func (q *purchaseQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*PurchaseView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.ApplicantID != actor {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *purchaseQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*PurchaseView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *purchaseQueriesImpl) ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]*PurchaseListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.store.FindByApplicant(ctx, applicantID, int32(limit))
}
